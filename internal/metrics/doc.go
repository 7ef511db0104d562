// Package metrics records operation counts, durations and memory use in a
// private Prometheus registry that can be exported as a node_exporter
// textfile.
package metrics
