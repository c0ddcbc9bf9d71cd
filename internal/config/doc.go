// Package config loads the wavefield YAML configuration.
//
// Values are read over built-in defaults, then WAVEFIELD_* environment
// variables are applied, then the result is validated. Colours are hex
// strings such as "#38bdf8".
package config
