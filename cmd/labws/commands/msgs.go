package commands

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Generate the OS lab editor workspace"
	MsgGenerateShort   = "Generate the workspace and header files"
	MsgShowShort       = "Print a generated file to stdout"
	MsgShowLong        = "Show generates the workspace or the header in memory and prints it, without writing anything."
	MsgDiffShort       = "Check the generated files against the ones on disk"
	MsgConfigShort     = "Print or write the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice    = "\nDRY RUN MODE - No files were written"
	MsgGenerated       = "Generated the workspace for %d labs: %s\n"
	MsgUpToDate        = "All files are up to date."
	MsgConfigSources   = "# sources: %s\n"
	MsgConfigWritten   = "Wrote [path]%s[/path]\n"
	MsgFallbackWarning = "[warning]No project root found, using the current directory %s[/warning]\n"
	MsgVersionFormat   = "labws version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrOutdated     = "%d generated file(s) are out of date, run 'labws generate'"
	MsgErrConfigExists = "%s already exists"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDir      = "Project root (default: the enclosing git repository)"
	MsgFlagConfig   = "Config file to use instead of the project labws.toml"
	MsgFlagLabs     = "Labs to generate for, comma separated"
	MsgFlagToken    = "Placeholder replaced by each lab name"
	MsgFlagTemplate = "Workspace template file (default: built-in)"
	MsgFlagFormat   = "Workspace format: json or yaml"
	MsgFlagNoColor  = "Disable colored output"
	MsgFlagDryRun   = "List what would be written without writing it"
	MsgFlagWrite    = "Write the effective configuration to labws.toml"
	MsgFlagDefaults = "Print the commented built-in defaults"
	MsgFlagPatch    = "Print line diffs for changed files"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/diff-long.txt
	msgDiffLongRaw string
	MsgDiffLong    = strings.TrimSpace(msgDiffLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
