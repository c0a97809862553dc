// SPDX-License-Identifier: MPL-2.0

// Package trait implements named capability sets ("traits") over plain Go
// structs, and type-erased trait objects that alias the state of the
// instance they were made from.
//
// A trait is a schema of state members (typed slots the conforming struct
// must physically contain) and behavior members (operations the conforming
// type must implement). Behavior is expressed as an ordinary Go interface
// and dispatched through the interface method table; state is expressed as
// a struct that conforming types embed, so a trait object can hold a
// pointer straight into the instance.
//
// # Lifecycle
//
//	h := trait.NewHeap()
//	inst, err := trait.New[Player](h, nil)   // zero-initialised, owned by the caller
//	obj, err := PlayerEntity.ToTrait(inst)   // to_trait: allocates the object only
//	state, _ := obj.State()
//	state.Health = 75                        // writes through to the Player
//	p, err := PlayerEntity.FromTrait(obj)    // from_trait: the exact *Player
//	obj.Destroy()                            // releases the object, never the Player
//	inst.Destroy()                           // invalidates every back-reference
//
// # Conformance
//
// [Conform] takes a proof closure of the form
//
//	func(self *Player) Entity { return self }
//
// which only compiles when *Player implements every method of Entity. A
// missing behavior therefore fails the build, never the first call. The
// traitkit generator emits these closures from declaration files, and the
// traitcheck analyzer checks hand-written declarations.
//
// # Concurrency
//
// The heap's slot table is safe for concurrent use. Instance state is not
// synchronized: concurrent writes through an instance or any of its trait
// objects must be serialized by the caller.
package trait
