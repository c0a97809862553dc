// Package trait mirrors the declaration API of the trait runtime.
package trait

type Member struct {
	Name string
}

type Trait struct {
	Name    string
	Members []Member
}

func State(name, typ string) Member { return Member{Name: name} }

func Behavior(name, returns string, params ...string) Member { return Member{Name: name} }

func Declare(name string, members ...Member) (*Trait, error) {
	return &Trait{Name: name, Members: members}, nil
}

func MustDeclare(name string, members ...Member) *Trait {
	t, _ := Declare(name, members...)
	return t
}
