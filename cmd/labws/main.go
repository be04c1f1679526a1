package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/labws/cmd/labws/commands"
	"github.com/arthur-debert/labws/pkg/style"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", style.ErrorIndicator, style.ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
