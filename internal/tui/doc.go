// Package tui implements the interactive explorer: a bubbletea text input
// whose value is evaluated on every keystroke for parity, Fibonacci and
// character statistics.
package tui
