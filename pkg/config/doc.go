// Package config loads labws settings.
//
// Settings are layered with koanf, lowest precedence first:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. the user config, $XDG_CONFIG_HOME/labws/config.toml or config.yaml
//  3. the project config (labws.toml, .labws.toml, labws.yaml or
//     .labws.yaml in the project root), or the file passed with --config
//  4. LABWS_* environment variables, e.g. LABWS_LABS=lab1,lab2 or
//     LABWS_OUTPUT_FORMAT=yaml
//  5. command line flags
//
// Lists given as strings (environment variables, flags) are split on
// commas. Later layers replace lists wholesale rather than appending.
package config
