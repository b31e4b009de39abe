package meval

import (
	"fmt"
	"math"

	"github.com/lyraproj/issue/issue"
	. "gopkg.in/check.v1"
)

type ContextSuite struct {
	env *Environment
	r   float64
}

var _ = Suite(&ContextSuite{})

func (s *ContextSuite) SetUpTest(c *C) {
	s.env = NewEnvironment()
	s.r = 2.0
}

func (s *ContextSuite) TestEmptyEnvironment(c *C) {
	_, ok := s.env.LookupVariable("x")
	c.Check(ok, Equals, false)
	v, ok := s.env.LookupConstant("x")
	c.Check(ok, Equals, false)
	c.Check(math.IsNaN(v), Equals, true)
	_, ok = s.env.LookupFunction("x", 1)
	c.Check(ok, Equals, false)

	vars, consts, funcs := s.env.Capacity()
	c.Check([]int{vars, consts, funcs}, DeepEquals, []int{0, 0, 0})
}

func (s *ContextSuite) TestCapacityGrowth(c *C) {
	c.Assert(s.env.AddConstants(), IsNil)
	_, consts, _ := s.env.Capacity()
	c.Check(consts, Equals, 0)

	batch := func(from, n int) []ConstantBinding {
		res := make([]ConstantBinding, n)
		for i := range res {
			res[i] = ConstantBinding{Name: fmt.Sprintf("c%d", from+i), Value: float64(from + i)}
		}
		return res
	}

	c.Assert(s.env.AddConstants(batch(0, 1)...), IsNil)
	_, consts, _ = s.env.Capacity()
	c.Check(consts, Equals, 64)

	c.Assert(s.env.AddConstants(batch(1, 63)...), IsNil)
	_, consts, _ = s.env.Capacity()
	c.Check(consts, Equals, 64)

	c.Assert(s.env.AddConstants(batch(64, 1)...), IsNil)
	_, consts, _ = s.env.Capacity()
	c.Check(consts, Equals, 128)

	c.Assert(s.env.AddConstants(batch(65, 300)...), IsNil)
	_, consts, _ = s.env.Capacity()
	c.Check(consts, Equals, 365)

	c.Assert(s.env.AddConstants(batch(365, 1)...), IsNil)
	_, consts, _ = s.env.Capacity()
	c.Check(consts, Equals, 730)

	all := s.env.Constants()
	c.Assert(all, HasLen, 366)
	for i, b := range all {
		c.Check(b.Value, Equals, float64(i))
	}
}

func (s *ContextSuite) TestVariableCapacityIsTracked(c *C) {
	cells := make([]float64, 130)
	for i := range cells {
		c.Assert(s.env.AddVariables(VariableBinding{Name: fmt.Sprintf("v%d", i), Value: &cells[i]}), IsNil)
	}
	vars, _, _ := s.env.Capacity()
	c.Check(vars, Equals, 256)
	c.Check(s.env.Variables(), HasLen, 130)
}

func (s *ContextSuite) TestFirstMatchWins(c *C) {
	other := 3.0
	c.Assert(s.env.AddVariables(
		VariableBinding{Name: "r", Value: &s.r},
		VariableBinding{Name: "r", Value: &other}), IsNil)
	c.Assert(s.env.AddConstants(
		ConstantBinding{Name: "k", Value: 1},
		ConstantBinding{Name: "k", Value: 2}), IsNil)

	cell, ok := s.env.LookupVariable("r")
	c.Assert(ok, Equals, true)
	c.Check(cell == &s.r, Equals, true)

	v, ok := s.env.LookupConstant("k")
	c.Check(ok, Equals, true)
	c.Check(v, Equals, 1.0)
}

func (s *ContextSuite) TestExactNameMatch(c *C) {
	c.Assert(s.env.AddConstants(ConstantBinding{Name: "radius", Value: 1}), IsNil)
	for _, name := range []string{"r", "rad", "radiusx", "Radius", ""} {
		_, ok := s.env.LookupConstant(name)
		c.Check(ok, Equals, false, Commentf("%q", name))
	}
	_, ok := s.env.LookupConstant("radius")
	c.Check(ok, Equals, true)
}

func (s *ContextSuite) TestFunctionsAreFilteredByArity(c *C) {
	c.Assert(s.env.AddFunctions(
		FunctionBinding{Name: "f", Func: Func1(func(a float64) float64 { return 10 + a })},
		FunctionBinding{Name: "f", Func: Func2(func(a, b float64) float64 { return 20 + a + b })},
	), IsNil)

	f, ok := s.env.LookupFunction("f", 2)
	c.Assert(ok, Equals, true)
	c.Check(f.Arity(), Equals, 2)

	f, ok = s.env.LookupFunction("f", 1)
	c.Assert(ok, Equals, true)
	c.Check(f.Arity(), Equals, 1)

	_, ok = s.env.LookupFunction("f", 0)
	c.Check(ok, Equals, false)
	_, ok = s.env.LookupFunction("f", 3)
	c.Check(ok, Equals, false)
}

func (s *ContextSuite) TestRejectsInvalidBindings(c *C) {
	tests := []struct {
		err  error
		code issue.Code
	}{
		{s.env.AddVariables(VariableBinding{Name: "x"}), MissingBindingValue},
		{s.env.AddVariables(VariableBinding{Name: "x y", Value: &s.r}), InvalidBindingName},
		{s.env.AddConstants(ConstantBinding{Name: ""}), InvalidBindingName},
		{s.env.AddConstants(ConstantBinding{Name: "2pi"}), InvalidBindingName},
		{s.env.AddFunctions(FunctionBinding{Name: "f"}), MissingBindingValue},
		{s.env.AddFunctions(FunctionBinding{Name: "f", Func: Func1(nil)}), MissingBindingValue},
		{s.env.AddFunctions(FunctionBinding{Name: "f(", Func: Func0(four)}), InvalidBindingName},
	}

	for i, t := range tests {
		if c.Check(t.err, Not(IsNil), Commentf("[%d]", i)) == false {
			continue
		}
		c.Check(t.err.(issue.Reported).Code(), Equals, t.code, Commentf("[%d]", i))
	}

	// a rejected batch is not appended at all
	err := s.env.AddConstants(ConstantBinding{Name: "ok", Value: 1}, ConstantBinding{Name: "not ok"})
	c.Check(err, Not(IsNil))
	c.Check(s.env.Constants(), HasLen, 0)
}

func four() float64 { return 4 }

func (s *ContextSuite) TestListsInInsertionOrder(c *C) {
	c.Assert(s.env.AddConstants(ConstantBinding{Name: "b"}, ConstantBinding{Name: "a"}), IsNil)
	c.Assert(s.env.AddFunctions(
		FunctionBinding{Name: "g", Func: Func0(four)},
		FunctionBinding{Name: "f", Func: Func0(four)}), IsNil)

	names := []string{}
	for _, b := range s.env.Constants() {
		names = append(names, b.Name)
	}
	for _, b := range s.env.Functions() {
		names = append(names, b.Name)
	}
	c.Check(names, DeepEquals, []string{"b", "a", "g", "f"})

	// copies, not views
	s.env.Constants()[0].Name = "z"
	c.Check(s.env.Constants()[0].Name, Equals, "b")
}

func (s *ContextSuite) TestInclude(c *C) {
	c.Assert(s.env.AddConstants(ConstantBinding{Name: "pi", Value: 3}), IsNil)
	s.env.Include(Builtins())
	s.env.Include(nil)

	v, _ := s.env.LookupConstant("pi")
	c.Check(v, Equals, 3.0)
	_, ok := s.env.LookupFunction("sqrt", 1)
	c.Check(ok, Equals, true)
	c.Check(len(s.env.Constants()), Equals, 1+len(Builtins().Constants()))
}

func (s *ContextSuite) TestRelease(c *C) {
	c.Assert(s.env.AddVariables(VariableBinding{Name: "r", Value: &s.r}), IsNil)
	s.env.Release()

	_, ok := s.env.LookupVariable("r")
	c.Check(ok, Equals, false)
	c.Check(s.r, Equals, 2.0)

	// still usable
	c.Assert(s.env.AddVariables(VariableBinding{Name: "r", Value: &s.r}), IsNil)
	_, ok = s.env.LookupVariable("r")
	c.Check(ok, Equals, true)
	s.env.Release()
}

func (s *ContextSuite) TestBuiltins(c *C) {
	b := Builtins()
	c.Check(b, Equals, Builtins())

	pi, ok := b.LookupConstant("pi")
	c.Check(ok, Equals, true)
	c.Check(pi, Equals, 3.14159265358979323846)

	sqrt, ok := b.LookupFunction("sqrt", 1)
	c.Assert(ok, Equals, true)
	c.Check(sqrt.Arity(), Equals, 1)

	_, ok = b.LookupFunction("sqrt", 2)
	c.Check(ok, Equals, false)

	for _, f := range []func(){
		func() { b.AddConstants(ConstantBinding{Name: "x"}) },
		func() { b.AddVariables() },
		func() { b.AddFunctions() },
		func() { b.Include(NewEnvironment()) },
		func() { b.Release() },
	} {
		c.Check(f, PanicMatches, `meval: the built-in environment is read-only`)
	}
}
