// SPDX-License-Identifier: MPL-2.0

// Package config loads traitkit's user configuration.
//
// The file format is CUE (config.cue), validated against the embedded
// config_schema.cue and merged into Viper on top of the defaults. Values can
// be overridden with TRAITKIT_* environment variables, for example
// TRAITKIT_GENERATE_OUTPUT=traits_gen.go. The file lives in the platform
// config directory ($XDG_CONFIG_HOME/traitkit, ~/Library/Application
// Support/traitkit or %APPDATA%\traitkit) or in the current directory.
package config
