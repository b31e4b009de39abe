package meval

import (
	"strconv"
	"strings"
)

// MaxArity is the largest number of arguments a function call may
// have.
const MaxArity = 3

// Node is a node of a parsed expression tree. The set of node types
// is closed: *Literal, *Variable, *Binary, *Unary and *Call.
type Node interface {
	String() string
	node()
}

// BinaryOp is the operator of a Binary node.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

// UnaryOp is the operator of a Unary node.
type UnaryOp int

const (
	OpPlus UnaryOp = iota
	OpMinus
)

func (op UnaryOp) String() string {
	switch op {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	}
	return "?"
}

// Literal is a number written in the source.
type Literal struct {
	Value float64
}

// Variable references a variable or a constant by name.
type Variable struct {
	Name string
}

// Binary applies Op to Left and Right, evaluated in that order.
type Binary struct {
	Op          BinaryOp
	Left, Right Node
}

// Unary applies a sign to Operand.
type Unary struct {
	Op      UnaryOp
	Operand Node
}

// Call is a function call. Only the first Arity slots of Args are
// used; functions are resolved by name and arity.
type Call struct {
	Name  string
	Args  [MaxArity]Node
	Arity int
}

func (*Literal) node()  {}
func (*Variable) node() {}
func (*Binary) node()   {}
func (*Unary) node()    {}
func (*Call) node()     {}

func (n *Literal) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *Variable) String() string {
	return n.Name
}

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

func (n *Unary) String() string {
	return "(" + n.Op.String() + n.Operand.String() + ")"
}

func (n *Call) String() string {
	args := make([]string, 0, n.Arity)
	for _, a := range n.Arguments() {
		args = append(args, a.String())
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

// Arguments returns the used argument slots.
func (n *Call) Arguments() []Node {
	return n.Args[:n.Arity]
}

// Signature returns the name/arity pair the call is resolved with,
// e.g. "atan2/2".
func (n *Call) Signature() string {
	return n.Name + "/" + strconv.Itoa(n.Arity)
}

// An Expression is the result of a parse. It may be evaluated any
// number of times, concurrently, against any Environment.
//
// Names held by the tree are substrings of the parsed text, no copy
// is made.
type Expression struct {
	root Node
}

// Root returns the root of the tree, or nil once the expression has
// been released.
func (e *Expression) Root() Node {
	if e == nil {
		return nil
	}
	return e.root
}

// Valid reports whether the expression holds a tree.
func (e *Expression) Valid() bool {
	return e.Root() != nil
}

func (e *Expression) String() string {
	if !e.Valid() {
		return "<nil>"
	}
	return e.root.String()
}

// Release detaches every node of the tree, children first. The
// expression evaluates to NaN afterwards. Releasing twice is harmless.
func (e *Expression) Release() {
	if e == nil {
		return
	}
	release(e.root)
	e.root = nil
}

func release(n Node) {
	switch n := n.(type) {
	case *Binary:
		release(n.Left)
		release(n.Right)
		n.Left, n.Right = nil, nil
	case *Unary:
		release(n.Operand)
		n.Operand = nil
	case *Call:
		for i := range n.Args {
			release(n.Args[i])
			n.Args[i] = nil
		}
		n.Arity = 0
	}
}

// Walk visits the tree rooted at n in pre-order. Children of a node
// are skipped when fn returns false for it.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Unary:
		Walk(n.Operand, fn)
	case *Call:
		for _, a := range n.Arguments() {
			Walk(a, fn)
		}
	}
}

// Names returns the distinct variable names and call signatures
// referenced by e, in order of first appearance.
func Names(e *Expression) (variables, calls []string) {
	seen := make(map[string]bool)
	Walk(e.Root(), func(n Node) bool {
		switch n := n.(type) {
		case *Variable:
			if !seen[n.Name] {
				seen[n.Name] = true
				variables = append(variables, n.Name)
			}
		case *Call:
			s := n.Signature()
			if !seen[s] {
				seen[s] = true
				calls = append(calls, s)
			}
		}
		return true
	})
	return variables, calls
}
