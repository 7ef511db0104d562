// Package format holds presentation helpers shared by the CLI and TUI:
// duration and ETA rendering, digit grouping and progress aggregation.
package format
