// Package paths resolves the directories labws reads from and writes to.
//
// # Project root
//
// Generated files land in the project root, resolved in this order:
//
//   - the directory passed explicitly (the --dir flag)
//   - LABWS_ROOT
//   - the enclosing git repository (git rev-parse --show-toplevel)
//   - the current working directory
//
// # Environment Variables
//
//   - LABWS_ROOT: project root override
//   - LABWS_CONFIG_DIR: user config directory (default: $XDG_CONFIG_HOME/labws)
//   - LABWS_STATE_DIR: state directory holding the log file (default: $XDG_STATE_HOME/labws)
package paths
