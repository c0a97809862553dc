// SPDX-License-Identifier: MPL-2.0

package trait

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	slotFree slotKind = iota
	slotInstance
	slotObject
)

var defaultHeap = sync.OnceValue(func() *Heap { return NewHeap() })

type (
	slotKind uint8

	// Handle is a generation-checked reference to a heap slot. Releasing a
	// slot bumps its generation, so every Handle to it stops being live. The
	// zero Handle is never live.
	Handle struct {
		index uint32
		gen   uint32
	}

	// HeapStats reports live slot counts.
	HeapStats struct {
		Instances int
		Objects   int
	}

	// HeapOption configures a Heap.
	HeapOption func(*Heap)

	// Heap owns the bookkeeping for instances and trait objects: which are
	// alive, and which trait object points at which instance. It does not own
	// the instance memory itself; that is ordinary Go memory.
	Heap struct {
		id           uuid.UUID
		logger       *log.Logger
		maxInstances int
		maxObjects   int

		mu        sync.Mutex
		slots     []slot
		free      []uint32
		instances int
		objects   int
	}

	slot struct {
		gen   uint32
		kind  slotKind
		value any
		label string
	}
)

// NewHeap creates an empty heap.
func NewHeap(opts ...HeapOption) *Heap {
	h := &Heap{
		id:     uuid.New(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// DefaultHeap returns the process-wide heap used when a nil *Heap is passed
// to New.
func DefaultHeap() *Heap { return defaultHeap() }

// WithMaxInstances limits the number of live instances. Zero means no limit.
func WithMaxInstances(n int) HeapOption {
	return func(h *Heap) { h.maxInstances = max(n, 0) }
}

// WithMaxObjects limits the number of live trait objects. Zero means no limit.
func WithMaxObjects(n int) HeapOption {
	return func(h *Heap) { h.maxObjects = max(n, 0) }
}

// WithLogger sets the logger used for debug lifecycle records.
func WithLogger(logger *log.Logger) HeapOption {
	return func(h *Heap) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// ID returns the heap's unique identifier.
func (h *Heap) ID() uuid.UUID { return h.id }

// Stats returns the number of live instances and trait objects.
func (h *Heap) Stats() HeapStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HeapStats{Instances: h.instances, Objects: h.objects}
}

func (h *Heap) alloc(kind slotKind, value any, label string) (Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch kind {
	case slotInstance:
		if h.maxInstances > 0 && h.instances >= h.maxInstances {
			return Handle{}, &AllocationError{Kind: "instance " + label, Limit: h.maxInstances}
		}
		h.instances++
	case slotObject:
		if h.maxObjects > 0 && h.objects >= h.maxObjects {
			return Handle{}, &AllocationError{Kind: "trait object " + label, Limit: h.maxObjects}
		}
		h.objects++
	default:
		return Handle{}, fmt.Errorf("allocate slot of kind %d: %w", kind, ErrAllocation)
	}

	var idx uint32
	if n := len(h.free); n > 0 {
		idx = h.free[n-1]
		h.free = h.free[:n-1]
	} else {
		h.slots = append(h.slots, slot{})
		idx = uint32(len(h.slots) - 1)
	}

	s := &h.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.kind = kind
	s.value = value
	s.label = label

	handle := Handle{index: idx, gen: s.gen}
	h.logger.Debug("slot allocated", "heap", h.id, "kind", kind, "handle", handle, "label", label)
	return handle, nil
}

// release frees the slot behind handle if it is live and of the given kind.
// It reports whether anything was released.
func (h *Heap) release(handle Handle, kind slotKind) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.liveLocked(handle)
	if !ok || s.kind != kind {
		return false
	}
	label := s.label
	s.kind = slotFree
	s.value = nil
	s.label = ""
	s.gen++
	h.free = append(h.free, handle.index)

	switch kind {
	case slotInstance:
		h.instances--
	case slotObject:
		h.objects--
	}
	h.logger.Debug("slot released", "heap", h.id, "kind", kind, "handle", handle, "label", label)
	return true
}

func (h *Heap) live(handle Handle) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.liveLocked(handle)
	return ok
}

func (h *Heap) lookup(handle Handle) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.liveLocked(handle)
	if !ok {
		return nil, false
	}
	return s.value, true
}

func (h *Heap) liveLocked(handle Handle) (*slot, bool) {
	if handle.gen == 0 || int(handle.index) >= len(h.slots) {
		return nil, false
	}
	s := &h.slots[handle.index]
	if s.kind == slotFree || s.gen != handle.gen {
		return nil, false
	}
	return s, true
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// String returns "#<index>.<generation>".
func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

// String returns the slot kind name.
func (k slotKind) String() string {
	switch k {
	case slotInstance:
		return "instance"
	case slotObject:
		return "object"
	default:
		return "free"
	}
}
