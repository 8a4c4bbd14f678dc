// Package function defines the user-defined function (closure) value.
// It is its own package, rather than living in objects, because a closure
// must hold onto a parser.Block and a scope.Scope — and scope already
// depends on objects, so objects cannot depend back on scope without a
// cycle.
package function

import (
	"fmt"
	"strings"

	"github.com/minilang-go/minilang/objects"
	"github.com/minilang-go/minilang/parser"
	"github.com/minilang-go/minilang/scope"
)

// Closure is a minilang function value: its parameter names, its body,
// and the scope it closed over at the moment its `func` expression was
// evaluated. Env is a live pointer, not a snapshot — bindings added to an
// outer scope after the closure was created remain visible to it, which
// is exactly what the language's closure semantics require.
type Closure struct {
	Params []string
	Body   *parser.Block
	Env    *scope.Scope
}

func (c *Closure) Type() objects.Type { return objects.ClosureType }
func (c *Closure) Print() string      { return "<func>" }

// Bind produces the uniform-function-call-syntax partial application of c:
// a closure with its first parameter pre-bound to recv, leaving the
// remaining parameters positional. A fresh scope carries the binding so
// the original Closure is left untouched — each dot-access of a closure
// with parameters mints a new bound closure, as the spec's design notes
// call out explicitly. A closure with no parameters is returned as is.
func (c *Closure) Bind(recv objects.Object) *Closure {
	if len(c.Params) == 0 {
		return c
	}
	bound := scope.New(c.Env)
	bound.Define(c.Params[0], recv)
	return &Closure{Params: c.Params[1:], Body: c.Body, Env: bound}
}

// String renders a closure's parameter list, used only for debugging aids
// like a would-be `print_env` dump — never for `print`, which always
// shows "<func>".
func (c *Closure) String() string {
	return fmt.Sprintf("func(%s)", strings.Join(c.Params, ", "))
}
