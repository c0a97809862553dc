// SPDX-License-Identifier: MPL-2.0

package trait

import (
	"fmt"
	"strings"
)

type (
	// Impl is an implementation block: it runs once on a freshly
	// zero-initialised value, before New returns it. Fields it does not set
	// keep their zero value.
	Impl[T any] func(self *T)

	// Instance owns one heap-tracked value of a conforming type. The value
	// never moves, so trait objects may alias its fields for as long as the
	// instance is alive.
	Instance[T any] struct {
		heap   *Heap
		handle Handle
		value  *T
	}
)

// New allocates a zero-initialised T on h, runs impl on it and returns the
// owning Instance. A nil h uses DefaultHeap. If h refuses the allocation the
// returned error wraps ErrAllocation and no instance is returned.
func New[T any](h *Heap, impl Impl[T]) (*Instance[T], error) {
	if h == nil {
		h = DefaultHeap()
	}
	value := new(T)
	handle, err := h.alloc(slotInstance, value, typeName[T]())
	if err != nil {
		return nil, err
	}
	if impl != nil {
		impl(value)
	}
	return &Instance[T]{heap: h, handle: handle, value: value}, nil
}

// Get returns the owned value, or ErrInstanceDestroyed once Destroy has run.
// Instances not made by New report ErrNilInstance.
func (i *Instance[T]) Get() (*T, error) {
	if i == nil || i.heap == nil {
		return nil, ErrNilInstance
	}
	if !i.heap.live(i.handle) {
		return nil, ErrInstanceDestroyed
	}
	return i.value, nil
}

// Heap returns the heap tracking the instance.
func (i *Instance[T]) Heap() *Heap { return i.heap }

// Handle returns the instance's heap handle.
func (i *Instance[T]) Handle() Handle { return i.handle }

// Alive reports whether the instance has not been destroyed.
func (i *Instance[T]) Alive() bool {
	return i != nil && i.heap != nil && i.heap.live(i.handle)
}

// Destroy releases the instance. Every trait object made from it reports
// ErrInstanceDestroyed afterwards; the trait objects themselves stay
// allocated until they are destroyed. Destroy is idempotent and safe on a
// nil receiver.
func (i *Instance[T]) Destroy() {
	if i == nil || i.heap == nil {
		return
	}
	if i.heap.release(i.handle, slotInstance) {
		i.value = nil
	}
}

func typeName[T any]() string {
	return strings.TrimPrefix(fmt.Sprintf("%T", (*T)(nil)), "*")
}
