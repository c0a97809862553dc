package traits

type Named interface {
	Name() string
}

type NamedState struct {
	Label string
}
