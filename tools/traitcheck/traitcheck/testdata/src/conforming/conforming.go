package conforming

// Entity is the behavior of the Entity trait.
type Entity interface {
	GetStatus() string
}

// EntityState holds the state members of the Entity trait.
type EntityState struct {
	Health int
}

// A is a trait without state.
type A interface {
	AMethod()
}

//trait:implements Entity, A
type Player struct {
	EntityState
	Name string
}

func (p *Player) GetStatus() string { return p.Name }

func (p *Player) AMethod() {}

// Foo implements A with a value receiver, which the pointer method set
// includes.
//
//trait:implements A
type Foo struct{}

func (Foo) AMethod() {}

type (
	//trait:implements A
	Grouped struct{}

	Plain struct{}
)

func (*Grouped) AMethod() {}
