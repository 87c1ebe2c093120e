package core

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrMissingResource is returned when a required resource was never inserted.
var ErrMissingResource = errors.New("missing resource")

// World is a type-keyed registry of shared resources (window, event
// channels, plugin state). One value per type.
type World struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any
}

func NewWorld() *World {
	return &World{resources: make(map[reflect.Type]any, 16)}
}

// Insert stores v as the resource of type T, replacing any previous value.
func Insert[T any](w *World, v T) {
	w.mu.Lock()
	w.resources[reflect.TypeFor[T]()] = v
	w.mu.Unlock()
}

// InsertNew stores v only if no resource of type T exists yet. It reports
// whether the value was stored.
func InsertNew[T any](w *World, v T) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := reflect.TypeFor[T]()
	if _, ok := w.resources[key]; ok {
		return false
	}
	w.resources[key] = v
	return true
}

// Fetch returns the resource of type T.
func Fetch[T any](w *World) (T, bool) {
	w.mu.RLock()
	v, ok := w.resources[reflect.TypeFor[T]()]
	w.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Require returns the resource of type T or an error wrapping ErrMissingResource.
func Require[T any](w *World) (T, error) {
	v, ok := Fetch[T](w)
	if !ok {
		return v, fmt.Errorf("%w: %s", ErrMissingResource, reflect.TypeFor[T]())
	}
	return v, nil
}

// Remove deletes the resource of type T.
func Remove[T any](w *World) {
	w.mu.Lock()
	delete(w.resources, reflect.TypeFor[T]())
	w.mu.Unlock()
}
