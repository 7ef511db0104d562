// Package config resolves the run configuration from command-line flags and
// NUMKIT_* environment variables.
package config
