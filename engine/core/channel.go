package core

import "sync"

// ReaderID identifies a read cursor registered on an EventChannel.
type ReaderID int

// EventChannel is an ordered event stream with independent read cursors.
//
// Every registered reader sees every event written after its registration,
// in write order. Events are retained until all readers have consumed them;
// with no readers registered, writes are dropped.
type EventChannel[T any] struct {
	mu      sync.Mutex
	buf     []T
	base    uint64 // absolute index of buf[0]
	readers map[ReaderID]uint64
	nextID  ReaderID
}

func NewEventChannel[T any]() *EventChannel[T] {
	return &EventChannel[T]{readers: make(map[ReaderID]uint64)}
}

// Register creates a reader positioned at the current end of the stream.
func (c *EventChannel[T]) Register() ReaderID {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.readers[id] = c.base + uint64(len(c.buf))
	return id
}

// Unregister drops a reader and releases events only it was holding.
func (c *EventChannel[T]) Unregister(id ReaderID) {
	c.mu.Lock()
	delete(c.readers, id)
	c.compact()
	c.mu.Unlock()
}

func (c *EventChannel[T]) Write(ev T) {
	c.mu.Lock()
	if len(c.readers) > 0 {
		c.buf = append(c.buf, ev)
	}
	c.mu.Unlock()
}

func (c *EventChannel[T]) WriteAll(evs []T) {
	if len(evs) == 0 {
		return
	}
	c.mu.Lock()
	if len(c.readers) > 0 {
		c.buf = append(c.buf, evs...)
	}
	c.mu.Unlock()
}

// Read returns the events written since the reader's last Read, in order,
// and advances the cursor. The returned slice is owned by the caller.
// Unknown readers get nil.
func (c *EventChannel[T]) Read(id ReaderID) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	pos, ok := c.readers[id]
	if !ok {
		return nil
	}
	end := c.base + uint64(len(c.buf))
	if pos >= end {
		return nil
	}
	out := make([]T, end-pos)
	copy(out, c.buf[pos-c.base:])
	c.readers[id] = end
	c.compact()
	return out
}

// Pending reports how many events the reader has not consumed yet.
func (c *EventChannel[T]) Pending(id ReaderID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	pos, ok := c.readers[id]
	if !ok {
		return 0
	}
	return int(c.base + uint64(len(c.buf)) - pos)
}

// Len reports how many events are currently retained.
func (c *EventChannel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buf)
}

// compact drops the prefix every reader has consumed. Caller holds mu.
func (c *EventChannel[T]) compact() {
	end := c.base + uint64(len(c.buf))
	low := end
	for _, pos := range c.readers {
		if pos < low {
			low = pos
		}
	}
	drop := int(low - c.base)
	if drop == 0 {
		return
	}
	var zero T
	for i := 0; i < drop; i++ {
		c.buf[i] = zero
	}
	c.buf = c.buf[drop:]
	c.base = low
	if len(c.buf) == 0 {
		c.buf = c.buf[:0:0]
	}
}
