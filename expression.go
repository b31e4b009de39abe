package meval

import "math"

// Evaluate computes the value of e. Names are resolved in c, or in
// Builtins if c is nil.
//
// Evaluation never fails: unbound names, functions missing at the
// called arity and released expressions all yield NaN, and arithmetic
// follows IEEE-754 (1/0 is +Inf, 0/0 is NaN). Neither e nor c is
// modified, host functions excepted.
func Evaluate(c Context, e *Expression) float64 {
	root := e.Root()
	if root == nil {
		return math.NaN()
	}
	if env, ok := c.(*Environment); c == nil || ok && env == nil {
		c = Builtins()
	}
	return eval(c, root)
}

// Eval evaluates the expression against c, see Evaluate.
func (e *Expression) Eval(c Context) float64 {
	return Evaluate(c, e)
}

// EvalBuiltin evaluates e against Builtins.
func EvalBuiltin(e *Expression) float64 {
	return Evaluate(Builtins(), e)
}

// Eval parses text, evaluates it against Builtins and releases it. It
// returns NaN if text cannot be parsed.
func Eval(text string) float64 {
	e, err := Parse(text)
	if err != nil {
		return math.NaN()
	}
	defer e.Release()
	return EvalBuiltin(e)
}

func eval(c Context, n Node) float64 {
	switch n := n.(type) {
	case *Literal:
		return n.Value

	case *Variable:
		if cell, ok := c.LookupVariable(n.Name); ok && cell != nil {
			return *cell
		}
		if value, ok := c.LookupConstant(n.Name); ok {
			return value
		}
		return math.NaN()

	case *Binary:
		left := eval(c, n.Left)
		right := eval(c, n.Right)
		switch n.Op {
		case OpAdd:
			return left + right
		case OpSub:
			return left - right
		case OpMul:
			return left * right
		case OpDiv:
			return left / right
		}

	case *Unary:
		value := eval(c, n.Operand)
		switch n.Op {
		case OpPlus:
			return +value
		case OpMinus:
			return -value
		}

	case *Call:
		if n.Arity < 0 || n.Arity > MaxArity {
			return math.NaN()
		}
		var args [MaxArity]float64
		for i, a := range n.Arguments() {
			args[i] = eval(c, a)
		}
		if f, ok := c.LookupFunction(n.Name, n.Arity); ok && f != nil && f.Arity() == n.Arity {
			return f.call(&args)
		}
	}

	return math.NaN()
}
