package meval

import (
	"math"

	"github.com/lyraproj/issue/issue"
)

// A Context resolves the names an Expression refers to. Evaluate
// consults variables before constants, and functions by name and
// arity.
type Context interface {
	// LookupVariable returns the cell bound to name.
	LookupVariable(name string) (*float64, bool)
	// LookupConstant returns the value bound to name, NaN if absent.
	LookupConstant(name string) (float64, bool)
	// LookupFunction returns the function of exactly arity arguments
	// bound to name.
	LookupFunction(name string, arity int) (Function, bool)
}

// VariableBinding binds a name to a caller owned cell. The cell is
// read each time the variable is evaluated.
type VariableBinding struct {
	Name  string
	Value *float64
}

// ConstantBinding binds a name to a fixed value.
type ConstantBinding struct {
	Name  string
	Value float64
}

// FunctionBinding binds a name to a host function. Its arity is the
// one of Func.
type FunctionBinding struct {
	Name string
	Func Function
}

// initialCapacity is the capacity of a table after its first
// non-empty append. Tables double from there.
const initialCapacity = 64

// Environment is the most simple Context: three append only tables
// scanned linearly, the first matching entry wins. Duplicated names
// are allowed.
//
// An Environment must not be appended to while it is used by an
// evaluation. Concurrent evaluations are fine.
type Environment struct {
	variables []VariableBinding
	constants []ConstantBinding
	functions []FunctionBinding

	readOnly bool
}

// NewEnvironment creates an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{}
}

// AddVariables appends bindings to the variable table. The batch is
// rejected as a whole if a name is not an identifier or a cell is
// nil.
func (env *Environment) AddVariables(bindings ...VariableBinding) error {
	env.checkWritable()
	for _, b := range bindings {
		if err := checkBinding(`variable`, b.Name, b.Value != nil); err != nil {
			return err
		}
	}
	env.variables = appendTable(env.variables, bindings)
	return nil
}

// AddConstants appends bindings to the constant table.
func (env *Environment) AddConstants(bindings ...ConstantBinding) error {
	env.checkWritable()
	for _, b := range bindings {
		if err := checkBinding(`constant`, b.Name, true); err != nil {
			return err
		}
	}
	env.constants = appendTable(env.constants, bindings)
	return nil
}

// AddFunctions appends bindings to the function table. Two functions
// may share a name as long as their arities differ; if they do not,
// the first one wins.
func (env *Environment) AddFunctions(bindings ...FunctionBinding) error {
	env.checkWritable()
	for _, b := range bindings {
		if err := checkBinding(`function`, b.Name, b.Func != nil && !b.Func.isNil()); err != nil {
			return err
		}
	}
	env.functions = appendTable(env.functions, bindings)
	return nil
}

// Include appends all the tables of other, keeping their order.
func (env *Environment) Include(other *Environment) {
	env.checkWritable()
	if other == nil {
		return
	}
	env.variables = appendTable(env.variables, other.variables)
	env.constants = appendTable(env.constants, other.constants)
	env.functions = appendTable(env.functions, other.functions)
}

// LookupVariable returns the cell of the first variable named name.
func (env *Environment) LookupVariable(name string) (*float64, bool) {
	for _, b := range env.variables {
		if b.Name == name {
			return b.Value, true
		}
	}
	return nil, false
}

// LookupConstant returns the value of the first constant named name,
// NaN if there is none.
func (env *Environment) LookupConstant(name string) (float64, bool) {
	for _, b := range env.constants {
		if b.Name == name {
			return b.Value, true
		}
	}
	return math.NaN(), false
}

// LookupFunction returns the first function named name that takes
// arity arguments.
func (env *Environment) LookupFunction(name string, arity int) (Function, bool) {
	for _, b := range env.functions {
		if b.Func.Arity() == arity && b.Name == name {
			return b.Func, true
		}
	}
	return nil, false
}

// Variables returns a copy of the variable table, in insertion order.
func (env *Environment) Variables() []VariableBinding {
	return append([]VariableBinding(nil), env.variables...)
}

// Constants returns a copy of the constant table, in insertion order.
func (env *Environment) Constants() []ConstantBinding {
	return append([]ConstantBinding(nil), env.constants...)
}

// Functions returns a copy of the function table, in insertion order.
func (env *Environment) Functions() []FunctionBinding {
	return append([]FunctionBinding(nil), env.functions...)
}

// Capacity reports the allocated size of the three tables.
func (env *Environment) Capacity() (variables, constants, functions int) {
	return cap(env.variables), cap(env.constants), cap(env.functions)
}

// Release drops the tables. Variable cells and functions belong to
// the caller and are left untouched. The Environment is empty, and
// usable, afterwards.
func (env *Environment) Release() {
	env.checkWritable()
	env.variables = nil
	env.constants = nil
	env.functions = nil
}

func (env *Environment) checkWritable() {
	if env.readOnly {
		panic("meval: the built-in environment is read-only")
	}
}

func checkBinding(section, name string, bound bool) error {
	if !isIdentifier(name) {
		return issue.NewReported(InvalidBindingName, issue.SEVERITY_ERROR,
			issue.H{`section`: section, `name`: name}, nil)
	}
	if !bound {
		return issue.NewReported(MissingBindingValue, issue.SEVERITY_ERROR,
			issue.H{`section`: section, `name`: name}, nil)
	}
	return nil
}

// isIdentifier reports whether name would be lexed as a single
// identifier. Other names can never be referenced.
func isIdentifier(name string) bool {
	if name == `` {
		return false
	}
	l := NewLexer(name)
	t := l.Next()
	return t.Type == TokIdent && t.Value == name
}

// appendTable appends entries to table. The backing array starts at
// initialCapacity and doubles, or grows to fit the batch.
func appendTable[T any](table, entries []T) []T {
	if len(entries) == 0 {
		return table
	}
	if cap(table)-len(table) < len(entries) {
		size := cap(table) * 2
		if size < initialCapacity {
			size = initialCapacity
		}
		if size < len(table)+len(entries) {
			size = len(table) + len(entries)
		}
		grown := make([]T, len(table), size)
		copy(grown, table)
		table = grown
	}
	return append(table, entries...)
}
