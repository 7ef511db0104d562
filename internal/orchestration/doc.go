// Package orchestration runs the numeric operations with instrumentation:
// Fibonacci calculators execute concurrently on an errgroup and are
// cross-checked, and every operation is traced, timed and counted. Display
// is delegated through the ProgressReporter and ResultPresenter interfaces.
package orchestration
