//go:build profile

package profiler

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"syscall"
	"time"
)

// Enabled reports whether scopes are recorded in this build.
const Enabled = true

// DefaultCapacity is the ring size used when Init gets a non-positive one.
const DefaultCapacity = 1 << 20

// Init allocates the ring. Scopes started before Init are dropped.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	ring.reset(capacity)
}

// Start opens a scope and returns the func that closes it.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := names.intern(name)
	begin := time.Now().UnixNano()
	ring.push(mark{at: begin, id: id, open: true})
	return func() {
		end := max(time.Now().UnixNano(), begin)
		ring.push(mark{at: end, id: id})
	}
}

// Summary aggregates the scopes still held by the ring, slowest total first.
func Summary() []Scope {
	return summarize(ring.snapshot(), names.list())
}

func summarize(marks []mark, labels []string) []Scope {
	byID := make(map[int]*Scope)
	var open []mark
	for _, m := range marks {
		if m.open {
			open = append(open, m)
			continue
		}
		if len(open) == 0 || open[len(open)-1].id != m.id {
			continue
		}
		start := open[len(open)-1]
		open = open[:len(open)-1]

		s, ok := byID[m.id]
		if !ok {
			s = &Scope{Name: labels[m.id]}
			byID[m.id] = s
		}
		d := time.Duration(m.at - start.at)
		s.Calls++
		s.Total += d
		s.Max = max(s.Max, d)
	}

	out := make([]Scope, 0, len(byID))
	for _, s := range byID {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// OpenProfilerGraph writes the ring to a speedscope file in the temp
// directory and launches speedscope on it. The path is returned even when
// the viewer fails to start.
func OpenProfilerGraph() (string, error) {
	marks := ring.snapshot()
	if len(marks) == 0 {
		return "", fmt.Errorf("profiler: no scopes recorded")
	}
	path := filepath.Join(os.TempDir(), "grove.profile.speedscope.json")
	if err := writeSpeedscope(marks, names.list(), path); err != nil {
		return "", fmt.Errorf("profiler: %w", err)
	}

	cmd := exec.Command("speedscope", path)
	if runtime.GOOS == "windows" {
		if attr, ok := hideWindowAttr().(*syscall.SysProcAttr); ok {
			cmd.SysProcAttr = attr
		}
	}
	if err := cmd.Start(); err != nil {
		return path, fmt.Errorf("profiler: launch speedscope: %w", err)
	}
	return path, nil
}
