package configexceptions

type Entity interface{ GetStatus() string }

type EntityState struct{ Health int }

type Stateless interface{ Run() }

//trait:implements Entity
type Legacy struct{}

//trait:implements Entity
type Current struct{} // want `Current is missing behavior GetStatus of trait Entity` `Current does not embed EntityState required by trait Entity`

//trait:implements Stateless
type Runner struct{}
