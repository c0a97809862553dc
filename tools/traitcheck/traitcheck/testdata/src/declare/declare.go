package declare

import (
	"rt/trait"
)

const valueName = "value"

var Entity = trait.MustDeclare("Entity",
	trait.State("health", "int"),
	trait.Behavior("get_status", "string"),
)

var Broken = trait.MustDeclare("Broken",
	trait.State("value", "int"),
	trait.Behavior("value", ""), // want `trait Broken: member "value" declared more than once`
)

var Renamed = trait.MustDeclare("Renamed",
	trait.Behavior("getValue", "int"),
	trait.Behavior("get_value", "int"), // want `trait Renamed: members "getValue" and "get_value" both map to Go name GetValue`
)

var FromConst = trait.MustDeclare("FromConst",
	trait.State(valueName, "int"),
	trait.State("value", "string"), // want `trait FromConst: member "value" declared more than once`
)

var twice, errTwice = trait.Declare("Twice", trait.Behavior("run", ""), trait.Behavior("run", "")) // want `trait Twice: member "run" declared more than once`

// Spread and computed member lists are not checked.
var members = []trait.Member{trait.Behavior("run", ""), trait.Behavior("run", "")}

var Spread = trait.MustDeclare("Spread", members...)

func dynamic(name string) *trait.Trait {
	return trait.MustDeclare("Dynamic", trait.Behavior(name, ""), trait.Behavior(name, ""))
}

// Declare is not the trait runtime.
func Declare(name string, members ...trait.Member) *trait.Trait { return nil }

var Local = Declare("Local", trait.Behavior("run", ""), trait.Behavior("run", ""))
