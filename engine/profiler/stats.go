// Package profiler records nested timing scopes into a fixed ring and
// exports them as a speedscope evented profile. Without the "profile" build
// tag scopes are not recorded.
package profiler

import (
	"runtime"
	"time"
)

// Scope aggregates the closed samples of one scope name.
type Scope struct {
	Name  string
	Calls int
	Total time.Duration
	Max   time.Duration
}

// Mean is the average duration of a sample.
func (s Scope) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// Runtime is a snapshot of process counters shown by debug overlays.
type Runtime struct {
	HeapAlloc  uint64
	Mallocs    uint64
	Goroutines int
	CPUs       int
}

// ReadRuntime samples the runtime counters. It stops the world briefly.
func ReadRuntime() Runtime {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Runtime{
		HeapAlloc:  m.Alloc,
		Mallocs:    m.Mallocs,
		Goroutines: runtime.NumGoroutine(),
		CPUs:       runtime.NumCPU(),
	}
}
