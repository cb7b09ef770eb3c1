// SPDX-License-Identifier: EPL-2.0

// Package config holds the engine settings.
//
// Values come from Default, are overridden by LOWLATENCY_* environment
// variables through FromEnv, and the command line tool layers a YAML config
// file and flags on top using the mapstructure keys.
package config
