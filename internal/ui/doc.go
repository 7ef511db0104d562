// Package ui provides the color themes shared by the CLI, the REPL and the
// TUI. Colors are read from a process-wide theme selected at startup.
package ui
