package directives

import "traits"

type A interface{ Run() }

type AState struct{ Count int }

type B interface{ Run() }

type C interface{ Stop() }

type CState struct{ Count int }

//trait:implements Missing
type Unknown struct{} // want `Unknown implements unknown trait Missing: no interface Missing in scope`

//trait:implements C, C
type Twice struct { // want `trait C is listed more than once for Twice`
	CState
}

func (*Twice) Stop() {}

//trait:implements A, B
type Collide struct { // want `traits A and B of Collide both declare member Run`
	AState
}

func (*Collide) Run() {}

//trait:implements A, C
type StateCollide struct { // want `traits A and C of StateCollide both declare member Count`
	AState
	CState
}

func (*StateCollide) Run() {}

func (*StateCollide) Stop() {}

//trait:implements A
type Number int // want `//trait:implements on Number: traits are implemented by defined struct types`

//trait:implements
type Empty struct{} // want `//trait:implements on Empty names no traits`

//trait:implements A
//traitcheck:ignore
type Ignored struct{}

//trait:implements traits.Named
type Qualified struct {
	traits.NamedState
}

func (*Qualified) Name() string { return "" }

//trait:implements traits.Named
type QualifiedMissing struct{} // want `QualifiedMissing is missing behavior Name of trait traits\.Named` `QualifiedMissing does not embed NamedState required by trait traits\.Named`

//trait:implements nope.Named
type BadImport struct{} // want `BadImport implements unknown trait nope\.Named`
