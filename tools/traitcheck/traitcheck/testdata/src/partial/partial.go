package partial

// Testable declares two behaviors.
type Testable interface {
	TestMethod()
	GetValue(x int) int
}

//trait:implements Testable
type TestStruct struct { // want `TestStruct is missing behavior TestMethod of trait Testable`
	ID int
}

func (s *TestStruct) GetValue(x int) int { return s.ID + x }

//trait:implements Testable
type WrongSig struct{} // want `behavior GetValue of WrongSig has signature \(x string\) int, trait Testable declares \(x int\) int`

func (*WrongSig) TestMethod() {}

func (*WrongSig) GetValue(x string) int { return len(x) }
