//go:build profile

package profiler

import (
	"sync"
	"sync/atomic"
)

// mark is one scope boundary.
type mark struct {
	at   int64 // unix nanoseconds
	id   int
	open bool
}

// markRing keeps the newest marks. Writers claim slots with an atomic
// counter; snapshots are taken in write order.
type markRing struct {
	ready atomic.Bool
	n     atomic.Uint64
	marks []mark
}

var ring markRing

func (r *markRing) reset(capacity int) {
	r.ready.Store(false)
	r.marks = make([]mark, capacity)
	r.n.Store(0)
	r.ready.Store(true)
}

func (r *markRing) push(m mark) {
	i := r.n.Add(1) - 1
	r.marks[i%uint64(len(r.marks))] = m
}

func (r *markRing) snapshot() []mark {
	if !r.ready.Load() {
		return nil
	}
	n, size := r.n.Load(), uint64(len(r.marks))
	first := uint64(0)
	if n > size {
		first = n - size
	}
	out := make([]mark, 0, n-first)
	for i := first; i < n; i++ {
		out = append(out, r.marks[i%size])
	}
	return out
}

// nameTable interns scope names; ids index the speedscope frame list.
type nameTable struct {
	mu  sync.Mutex
	ids map[string]int
	all []string
}

var names = nameTable{ids: make(map[string]int)}

func (t *nameTable) intern(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := len(t.all)
	t.ids[name] = id
	t.all = append(t.all, name)
	return id
}

func (t *nameTable) list() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.all...)
}
