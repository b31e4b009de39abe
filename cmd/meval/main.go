// Command meval evaluates arithmetic expressions, given as arguments or
// typed in an interactive session.
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/atuleu/go-meval"
	"github.com/fatih/color"
	"github.com/peterh/liner"
)

const (
	historyFile = ".meval_history"
	prompt      = "meval> "
	usage       = `usage: meval [options] [expression ...]

options:
  -b FILE  load constants and variables from a YAML file
  -x       print the parsed tree instead of the value
  -h       print this help

Without expressions, meval starts an interactive session.
`
	replHelp = `  expr               evaluate expr
  :let name = expr   bind the value of expr to the variable name
  :ast expr          print the parsed tree of expr
  :env               list the bound names
  :help              print this help
  :quit              leave
`
)

var (
	valueColor = color.New(color.FgBlue)
	nanColor   = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
)

type session struct {
	env    *meval.Environment
	cells  map[string]*float64
	tree   bool
	out    io.Writer
	errOut io.Writer
}

func newSession(out, errOut io.Writer) *session {
	s := &session{
		env:    meval.NewEnvironment(),
		cells:  map[string]*float64{},
		out:    out,
		errOut: errOut,
	}
	s.env.Include(meval.Builtins())
	r := 2.0
	if err := s.bind(meval.VariableBinding{Name: "r", Value: &r}); err != nil {
		panic(err)
	}
	return s
}

func (s *session) bind(bindings ...meval.VariableBinding) error {
	if err := s.env.AddVariables(bindings...); err != nil {
		return err
	}
	for _, b := range bindings {
		if _, ok := s.cells[b.Name]; !ok {
			s.cells[b.Name] = b.Value
		}
	}
	return nil
}

func (s *session) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	vars, err := meval.LoadBindings(s.env, data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, v := range vars {
		if _, ok := s.cells[v.Name]; !ok {
			s.cells[v.Name] = v.Value
		}
	}
	return nil
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return nanColor.Sprint("NaN")
	}
	return valueColor.Sprint(strconv.FormatFloat(v, 'g', -1, 64))
}

func (s *session) fail(err error) {
	fmt.Fprintln(s.errOut, errColor.Sprint(err.Error()))
}

// evaluate prints the value, or the tree, of line. It returns false
// if line does not parse.
func (s *session) evaluate(line string, tree bool) bool {
	e, err := meval.Parse(line)
	if err != nil {
		s.fail(err)
		return false
	}
	defer e.Release()
	if tree {
		fmt.Fprintln(s.out, e.String())
		return true
	}
	v := e.Eval(s.env)
	fmt.Fprintln(s.out, formatValue(v))
	if math.IsNaN(v) {
		if names := s.unbound(e); len(names) > 0 {
			fmt.Fprintln(s.errOut, nanColor.Sprint("unbound: "+strings.Join(names, ", ")))
		}
	}
	return true
}

// unbound lists the names of e that s.env cannot resolve.
func (s *session) unbound(e *meval.Expression) []string {
	var res []string
	vars, calls := meval.Names(e)
	for _, name := range vars {
		_, isVar := s.env.LookupVariable(name)
		_, isConst := s.env.LookupConstant(name)
		if !isVar && !isConst {
			res = append(res, name)
		}
	}
	for _, sig := range calls {
		name, arity, _ := strings.Cut(sig, "/")
		n, _ := strconv.Atoi(arity)
		if _, ok := s.env.LookupFunction(name, n); !ok {
			res = append(res, sig)
		}
	}
	return res
}

func (s *session) let(arg string) error {
	i := strings.IndexByte(arg, '=')
	if i < 0 {
		return errors.New("usage: :let name = expr")
	}
	name := strings.TrimSpace(arg[:i])
	e, err := meval.Parse(arg[i+1:])
	if err != nil {
		return err
	}
	defer e.Release()
	v := e.Eval(s.env)

	if cell, ok := s.cells[name]; ok {
		*cell = v
	} else {
		cell := new(float64)
		*cell = v
		if err := s.bind(meval.VariableBinding{Name: name, Value: cell}); err != nil {
			return err
		}
	}
	fmt.Fprintf(s.out, "%s = %s\n", name, formatValue(v))
	return nil
}

func (s *session) listEnv() {
	for _, b := range s.env.Variables() {
		fmt.Fprintf(s.out, "variable  %-8s %s\n", b.Name, formatValue(*b.Value))
	}
	for _, b := range s.env.Constants() {
		fmt.Fprintf(s.out, "constant  %-8s %s\n", b.Name, formatValue(b.Value))
	}
	for _, b := range s.env.Functions() {
		fmt.Fprintf(s.out, "function  %s/%d\n", b.Name, b.Func.Arity())
	}
}

// command runs a ':' prefixed line and reports whether the session
// should stop.
func (s *session) command(line string) (exit bool) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch name {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(s.out, replHelp)
	case ":env":
		s.listEnv()
	case ":ast":
		s.evaluate(arg, true)
	case ":let":
		if err := s.let(arg); err != nil {
			s.fail(err)
		}
	default:
		fmt.Fprintf(s.errOut, "unknown command %s. Type :help for the list.\n", name)
	}
	return false
}

func (s *session) repl() {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			s.fail(err)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if s.command(line) {
				return
			}
			continue
		}
		s.evaluate(line, s.tree)
	}
}

func run(args []string, out, errOut io.Writer) int {
	opts, optind, err := getopt.Getopts(args, "b:xh")
	if err != nil {
		fmt.Fprintln(errOut, err)
		fmt.Fprint(errOut, usage)
		return 2
	}

	s := newSession(out, errOut)
	for _, opt := range opts {
		switch opt.Option {
		case 'b':
			if err := s.load(opt.Value); err != nil {
				s.fail(err)
				return 1
			}
		case 'x':
			s.tree = true
		case 'h':
			fmt.Fprint(out, usage)
			return 0
		}
	}

	exprs := args[optind:]
	if len(exprs) == 0 {
		s.repl()
		return 0
	}

	status := 0
	for _, e := range exprs {
		if !s.evaluate(e, s.tree) {
			status = 1
		}
	}
	return status
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
