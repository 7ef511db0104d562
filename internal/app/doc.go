// Package app wires configuration, calculators, orchestration and the
// terminal front ends into the numkit command.
package app
