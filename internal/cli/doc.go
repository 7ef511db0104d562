// Package cli renders numkit's terminal surface: the progress spinner,
// result and comparison presenters, result files (text, JSON, YAML), the
// interactive REPL and shell completion scripts.
package cli
