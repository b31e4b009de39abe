// Copyright 2014 Alexandre Tuleu
// This file is part of go-meval.
//
// go-meval is free software: you can redistribute it and/or modify it
// under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-meval is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public
// License along with go-meval.  If not, see
// <http://www.gnu.org/licenses/>.

/*
Package meval parses and evaluates arithmetic expressions over float64
values. An expression is made of decimal numbers, names, the four
operators + - * /, a leading sign, parentheses and calls with up to
three arguments.

Basics

An expression is parsed once with Parse into an Expression, and
evaluated as many times as needed with Evaluate or Expression.Eval. For
one-shot use, Eval parses and evaluates against the built-in
environment. See the Eval example.

Evaluation never fails: an unknown name, a function called with an
arity it does not provide, or a numeric singularity all yield NaN or an
infinity, following IEEE-754 semantics. Parse errors are reported as
issue.Reported values carrying a code and the offending token.

Environment

Names are resolved through a Context. Environment is the provided
implementation: an append-only set of variables (pointers to float64
cells the caller owns and may update between evaluations), constants
and functions of arity 0 to 3. Variables are looked up before
constants, and the first binding of a name wins. Builtins returns a
shared read-only Environment with pi, e, sqrt and the usual functions
of the math package; Include copies it into a writable one.

Bindings can also be read from a YAML document with LoadBindings.

An Environment is not safe for concurrent writes. Once populated, it
and any number of Expression values may be shared by concurrent
evaluations.
*/
package meval
