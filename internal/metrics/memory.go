package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of runtime memory statistics.
type MemorySnapshot struct {
	HeapAlloc    uint64 `json:"heap_alloc" yaml:"heap_alloc"`
	TotalAlloc   uint64 `json:"total_alloc" yaml:"total_alloc"`
	Sys          uint64 `json:"sys" yaml:"sys"`
	NumGC        uint32 `json:"num_gc" yaml:"num_gc"`
	PauseTotalNs uint64 `json:"pause_total_ns" yaml:"pause_total_ns"`
}

// MemoryDelta is the difference between two snapshots.
type MemoryDelta struct {
	Allocated uint64 `json:"allocated" yaml:"allocated"`
	GCCycles  uint32 `json:"gc_cycles" yaml:"gc_cycles"`
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

func NewMemoryCollector() *MemoryCollector { return &MemoryCollector{} }

// Snapshot stops the world briefly; avoid it in hot loops.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Since returns what was allocated, and how many GC cycles ran, between
// before and s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	var d MemoryDelta
	if s.TotalAlloc >= before.TotalAlloc {
		d.Allocated = s.TotalAlloc - before.TotalAlloc
	}
	if s.NumGC >= before.NumGC {
		d.GCCycles = s.NumGC - before.NumGC
	}
	return d
}
