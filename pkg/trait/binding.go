// SPDX-License-Identifier: MPL-2.0

package trait

// NoState is the state type of traits without state members.
type NoState struct{}

// Binding is the registered proof that *T conforms to a trait whose
// behavior interface is I and whose state block is S. It is the only way to
// produce trait objects.
type Binding[T, I, S any] struct {
	trait    *Trait
	typeName string
	behavior func(*T) I
	state    func(*T) *S
}

// Conform registers *T as conforming to tr.
//
// behavior binds an instance to the trait's interface; written as
//
//	func(self *T) I { return self }
//
// it compiles only if *T implements every behavior member, which is the
// conformance proof. state returns the address of the embedded state block
// and may be nil for traits without state members.
//
// I must have a method for every behavior member of tr, with the declared
// signature, and S a field for every state member, with the declared type.
//
// Conform returns a ConformanceError if tr is nil, if a behavior member is
// unbound (ErrUnboundBehavior), if a state member is not embedded
// (ErrMissingState), or if T is already registered for tr.
func Conform[T, I, S any](tr *Trait, behavior func(*T) I, state func(*T) *S) (*Binding[T, I, S], error) {
	name := typeName[T]()
	if tr == nil {
		return nil, &ConformanceError{Type: name, Err: ErrNilTrait}
	}
	if behavior == nil && tr.hasKind(KindBehavior) {
		return nil, &ConformanceError{Type: name, Trait: tr.name, Err: ErrUnboundBehavior}
	}
	if state == nil && tr.hasKind(KindState) {
		return nil, &ConformanceError{Type: name, Trait: tr.name, Err: ErrMissingState}
	}
	if member, reason, err := checkShape[I, S](tr); err != nil {
		return nil, &ConformanceError{Type: name, Trait: tr.name, Member: member, Reason: reason, Err: err}
	}
	if err := tr.addConformer(name); err != nil {
		return nil, &ConformanceError{Type: name, Trait: tr.name, Err: err}
	}
	return &Binding[T, I, S]{
		trait:    tr,
		typeName: name,
		behavior: behavior,
		state:    state,
	}, nil
}

// MustConform is like Conform but panics on error.
func MustConform[T, I, S any](tr *Trait, behavior func(*T) I, state func(*T) *S) *Binding[T, I, S] {
	b, err := Conform(tr, behavior, state)
	if err != nil {
		panic("trait: " + err.Error())
	}
	return b
}

// Trait returns the trait the binding was registered for.
func (b *Binding[T, I, S]) Trait() *Trait { return b.trait }

// TypeName returns the name of the conforming type.
func (b *Binding[T, I, S]) TypeName() string { return b.typeName }

// ToTrait makes a trait object over inst. The object's behavior is bound to
// inst's value and its state aliases inst's embedded state block. Only the
// object is allocated; inst is not modified.
func (b *Binding[T, I, S]) ToTrait(inst *Instance[T]) (*Object[I, S], error) {
	self, err := inst.Get()
	if err != nil {
		return nil, err
	}

	obj := &Object[I, S]{
		heap:   inst.heap,
		trait:  b.trait,
		source: inst.handle,
	}
	if b.behavior != nil {
		obj.impl = b.behavior(self)
	}
	if b.state != nil {
		obj.state = b.state(self)
	}

	handle, err := inst.heap.alloc(slotObject, nil, b.trait.name)
	if err != nil {
		return nil, err
	}
	obj.handle = handle
	return obj, nil
}

// FromTrait returns the exact instance obj was made from.
func (b *Binding[T, I, S]) FromTrait(obj *Object[I, S]) (*T, error) {
	if obj == nil {
		return nil, ErrObjectDestroyed
	}
	return From[T](obj)
}
