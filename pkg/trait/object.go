// SPDX-License-Identifier: MPL-2.0

package trait

import "fmt"

type (
	// AnyObject is the type-erased surface shared by every trait object.
	AnyObject interface {
		Trait() *Trait
		Handle() Handle
		Source() (any, error)
		Alive() bool
		Destroy()
	}

	// Object is a trait object: a view over one instance that exposes only
	// the trait's members. Behavior is the instance bound to the trait's
	// interface I; State points into the instance's embedded state block S.
	// The object keeps a checked back-reference to the instance but never
	// owns it.
	Object[I, S any] struct {
		heap   *Heap
		trait  *Trait
		handle Handle
		source Handle
		impl   I
		state  *S
	}
)

var _ AnyObject = (*Object[any, NoState])(nil)

// Behavior returns the trait's interface bound to the source instance.
func (o *Object[I, S]) Behavior() (I, error) {
	if err := o.check(); err != nil {
		var zero I
		return zero, err
	}
	return o.impl, nil
}

// State returns a pointer into the source instance's state block. Reads and
// writes through it are reads and writes of the instance. It is nil for
// traits without state members.
func (o *Object[I, S]) State() (*S, error) {
	if err := o.check(); err != nil {
		return nil, err
	}
	return o.state, nil
}

// Source returns the instance value the object was made from.
func (o *Object[I, S]) Source() (any, error) {
	if err := o.check(); err != nil {
		return nil, err
	}
	v, ok := o.heap.lookup(o.source)
	if !ok {
		return nil, ErrInstanceDestroyed
	}
	return v, nil
}

// Trait returns the object's trait.
func (o *Object[I, S]) Trait() *Trait { return o.trait }

// Handle returns the object's own heap handle.
func (o *Object[I, S]) Handle() Handle { return o.handle }

// Alive reports whether both the object and its source instance are alive.
func (o *Object[I, S]) Alive() bool { return o.check() == nil }

// Destroy releases the object. The source instance is untouched. Destroy is
// idempotent and safe on a nil receiver.
func (o *Object[I, S]) Destroy() {
	if o == nil || o.heap == nil {
		return
	}
	if o.heap.release(o.handle, slotObject) {
		var zero I
		o.impl = zero
		o.state = nil
	}
}

func (o *Object[I, S]) check() error {
	if o == nil || o.heap == nil || !o.heap.live(o.handle) {
		return ErrObjectDestroyed
	}
	if !o.heap.live(o.source) {
		return ErrInstanceDestroyed
	}
	return nil
}

// From returns the *T obj was made from. It fails with SourceTypeError if
// obj's source is of another type.
func From[T any](obj AnyObject) (*T, error) {
	if obj == nil {
		return nil, ErrObjectDestroyed
	}
	src, err := obj.Source()
	if err != nil {
		return nil, err
	}
	v, ok := src.(*T)
	if !ok {
		return nil, &SourceTypeError{Want: "*" + typeName[T](), Got: fmt.Sprintf("%T", src)}
	}
	return v, nil
}

// DestroyObject destroys obj if it is non-nil.
func DestroyObject(obj AnyObject) {
	if obj != nil {
		obj.Destroy()
	}
}
