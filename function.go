package meval

// Function is a host function callable from an expression. The
// variants are Func0, Func1, Func2 and Func3; the arity of a call
// selects among functions sharing a name.
type Function interface {
	Arity() int

	call(args *[MaxArity]float64) float64
	isNil() bool
}

type (
	Func0 func() float64
	Func1 func(float64) float64
	Func2 func(float64, float64) float64
	Func3 func(float64, float64, float64) float64
)

func (f Func0) Arity() int { return 0 }
func (f Func1) Arity() int { return 1 }
func (f Func2) Arity() int { return 2 }
func (f Func3) Arity() int { return 3 }

func (f Func0) call(*[MaxArity]float64) float64 {
	return f()
}

func (f Func1) call(a *[MaxArity]float64) float64 {
	return f(a[0])
}

func (f Func2) call(a *[MaxArity]float64) float64 {
	return f(a[0], a[1])
}

func (f Func3) call(a *[MaxArity]float64) float64 {
	return f(a[0], a[1], a[2])
}

func (f Func0) isNil() bool { return f == nil }
func (f Func1) isNil() bool { return f == nil }
func (f Func2) isNil() bool { return f == nil }
func (f Func3) isNil() bool { return f == nil }
