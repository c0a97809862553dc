package state

type Entity interface {
	GetStatus() string
}

type EntityState struct {
	Health int
}

//trait:implements Entity
type NoEmbed struct { // want `NoEmbed does not embed EntityState required by trait Entity`
	Health int
}

func (*NoEmbed) GetStatus() string { return "" }

//trait:implements Entity
type PtrEmbed struct { // want `PtrEmbed embeds \*EntityState: the state of trait Entity must be embedded by value`
	*EntityState
}

func (*PtrEmbed) GetStatus() string { return "" }

//trait:implements Entity
type Shadow struct { // want `field Health of Shadow shadows state member Health of trait Entity`
	EntityState
	Health string
}

func (*Shadow) GetStatus() string { return "" }
