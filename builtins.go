package meval

import (
	"math"
	"sync"
)

var (
	builtinOnce sync.Once
	builtinEnv  *Environment
)

// Builtins returns the read-only environment used when no Context is
// given. It holds the constants pi and e and the usual functions of
// the math package. Appending to it panics.
func Builtins() *Environment {
	builtinOnce.Do(func() {
		env := NewEnvironment()
		env.constants = appendTable(env.constants, builtinConstants)
		env.functions = appendTable(env.functions, builtinFunctions)
		env.readOnly = true
		builtinEnv = env
	})
	return builtinEnv
}

var builtinConstants = []ConstantBinding{
	{Name: "pi", Value: 3.14159265358979323846},
	{Name: "e", Value: math.E},
}

var builtinFunctions []FunctionBinding

func registerFunction(name string, f Function) {
	builtinFunctions = append(builtinFunctions, FunctionBinding{Name: name, Func: f})
}

func init() {
	registerFunction("sqrt", Func1(math.Sqrt))
	registerFunction("abs", Func1(math.Abs))
	registerFunction("ceil", Func1(math.Ceil))
	registerFunction("floor", Func1(math.Floor))
	registerFunction("exp", Func1(math.Exp))
	registerFunction("ln", Func1(math.Log))
	registerFunction("log10", Func1(math.Log10))
	registerFunction("sin", Func1(math.Sin))
	registerFunction("cos", Func1(math.Cos))
	registerFunction("tan", Func1(math.Tan))
	registerFunction("asin", Func1(math.Asin))
	registerFunction("acos", Func1(math.Acos))
	registerFunction("atan", Func1(math.Atan))
	registerFunction("sinh", Func1(math.Sinh))
	registerFunction("cosh", Func1(math.Cosh))
	registerFunction("tanh", Func1(math.Tanh))

	registerFunction("atan2", Func2(math.Atan2))
	registerFunction("pow", Func2(math.Pow))
	registerFunction("min", Func2(math.Min))
	registerFunction("max", Func2(math.Max))
	registerFunction("hypot", Func2(math.Hypot))
	registerFunction("mod", Func2(math.Mod))

	registerFunction("clamp", Func3(func(x, lo, hi float64) float64 {
		return math.Min(math.Max(x, lo), hi)
	}))
}
