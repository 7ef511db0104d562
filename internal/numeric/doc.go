// Package numeric holds the pure utilities at the centre of numkit: a parity
// check, two Fibonacci implementations (naive recursive and iterative with
// rolling accumulators) and a Unicode-aware string length.
//
// Every function is pure and safe for concurrent use. The Fibonacci functions
// are checked: indices above MaxIndex do not fit in a uint64 and return an
// error wrapping ErrOverflow instead of wrapping around.
package numeric
