package configexceptions

//trait:implements Entity
type Skipped struct{}
