// Package eval walks a parsed minilang AST against a chain of lexical
// scopes, producing an ordered list of printed lines or a single error.
//
// Every statement-evaluating method returns an *objects.Signal rather than
// using panic/recover for non-local control transfer: nil means normal
// completion, and loops/calls/the top-level program each absorb the
// signal kinds they own, letting the rest propagate — the "explicit
// sum-typed completion" the spec's design notes call for.
package eval

import (
	"errors"
	"io"

	"github.com/minilang-go/minilang/objects"
	"github.com/minilang-go/minilang/parser"
	"github.com/minilang-go/minilang/scope"
	"github.com/minilang-go/minilang/std"
)

// Evaluator holds the state of one program run: its root scope (seeded
// with builtins) and wherever `print` sends its lines. Writer is nil for
// a one-shot Run (lines accumulate in Output instead); the REPL sets it
// so output appears as each statement executes rather than only at the
// very end.
type Evaluator struct {
	Root   *scope.Scope
	Output []string
	Writer io.Writer
}

// New returns an Evaluator with a fresh root scope seeded with the
// builtin library.
func New() *Evaluator {
	root := scope.New(nil)
	for _, b := range std.All() {
		root.Define(b.Name, b)
	}
	return &Evaluator{Root: root}
}

// SetWriter directs subsequent `print` output straight to w instead of
// buffering it in Output, for interactive use.
func (e *Evaluator) SetWriter(w io.Writer) {
	e.Writer = w
}

// EvalChunk parses and evaluates one piece of source against this
// Evaluator's existing root scope, so bindings made by an earlier call
// remain visible — the persistence a REPL needs across lines. Unlike
// Run, it does not construct a fresh Evaluator.
func (e *Evaluator) EvalChunk(source string) *objects.Signal {
	prog, err := parser.Parse(source)
	if err != nil {
		return objects.Errorf("%s", err.Error())
	}
	return e.evalStmts(prog.Stmts, e.Root)
}

// Run parses and evaluates source, returning the ordered list of printed
// lines on success or a single error describing the first parse or
// evaluation failure. Partial output from a failed run is discarded, per
// §7: a failure unwinds the whole evaluation.
func Run(source string) ([]string, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	ev := New()
	sig := ev.evalStmts(prog.Stmts, ev.Root)
	if sig == nil {
		return ev.Output, nil
	}
	switch sig.Kind {
	case objects.SigBreak:
		return nil, errors.New("Break at top level.")
	case objects.SigContinue:
		return nil, errors.New("Continue at top level.")
	case objects.SigReturn:
		return nil, errors.New("Return at top level.")
	default:
		return nil, errors.New(sig.Message)
	}
}

// Call implements objects.Runtime, letting a builtin invoke a minilang
// closure or another builtin with already-evaluated arguments.
func (e *Evaluator) Call(fn objects.Object, args []objects.Object) (objects.Object, *objects.Signal) {
	return e.callValue(fn, args)
}

// evalStmts evaluates a statement list in sc, stopping at the first
// non-nil signal.
func (e *Evaluator) evalStmts(stmts []parser.Stmt, sc *scope.Scope) *objects.Signal {
	for _, stmt := range stmts {
		if sig := e.evalStmt(stmt, sc); sig != nil {
			return sig
		}
	}
	return nil
}

// isTruthy implements §9's resolved truthiness rule: false and null are
// falsy, everything else (including 0 and "") is truthy.
func isTruthy(v objects.Object) bool {
	switch x := v.(type) {
	case *objects.Boolean:
		return x.Value
	case *objects.Null:
		return false
	default:
		return true
	}
}
