package eval

import (
	"strings"

	"github.com/minilang-go/minilang/function"
	"github.com/minilang-go/minilang/objects"
	"github.com/minilang-go/minilang/parser"
	"github.com/minilang-go/minilang/scope"
)

// evalExpr dispatches on the expression's concrete AST type, returning
// either a value or a signal (always SigError for expressions — break,
// continue, and return never originate below the statement level).
func (e *Evaluator) evalExpr(expr parser.Expr, sc *scope.Scope) (objects.Object, *objects.Signal) {
	switch x := expr.(type) {
	case *parser.IntLit:
		return &objects.Integer{Value: x.Value}, nil
	case *parser.BoolLit:
		return &objects.Boolean{Value: x.Value}, nil
	case *parser.NullLit:
		return &objects.Null{}, nil
	case *parser.StrLit:
		return &objects.String{Value: x.Value}, nil
	case *parser.Ident:
		return sc.Get(x.Name)
	case *parser.ArrayLit:
		elems := make([]objects.Object, len(x.Elements))
		for i, el := range x.Elements {
			v, sig := e.evalExpr(el, sc)
			if sig != nil {
				return nil, sig
			}
			elems[i] = v
		}
		return &objects.Array{Elements: elems}, nil
	case *parser.DictLit:
		d := objects.NewDict()
		for i, k := range x.Keys {
			v, sig := e.evalExpr(x.Values[i], sc)
			if sig != nil {
				return nil, sig
			}
			d.Set(k, v)
		}
		return d, nil
	case *parser.FuncLit:
		return &function.Closure{Params: x.Params, Body: x.Body, Env: sc}, nil
	case *parser.IndexExpr:
		return e.evalIndexExpr(x, sc)
	case *parser.DotExpr:
		return e.evalDotExpr(x, sc)
	case *parser.UnaryExpr:
		return e.evalUnary(x, sc)
	case *parser.BinaryExpr:
		return e.evalBinary(x, sc)
	case *parser.CallExpr:
		return e.evalCall(x, sc)
	default:
		return nil, objects.Errorf("internal: unknown expression node %T", expr)
	}
}

func (e *Evaluator) evalUnary(u *parser.UnaryExpr, sc *scope.Scope) (objects.Object, *objects.Signal) {
	v, sig := e.evalExpr(u.Operand, sc)
	if sig != nil {
		return nil, sig
	}
	switch u.Op {
	case "-":
		i, ok := v.(*objects.Integer)
		if !ok {
			return nil, objects.Errorf("Unary `-` requires an int, got %s.", v.Type())
		}
		return &objects.Integer{Value: -i.Value}, nil
	case "not":
		return &objects.Boolean{Value: !isTruthy(v)}, nil
	default:
		return nil, objects.Errorf("internal: unknown unary operator %q", u.Op)
	}
}

// evalBinary evaluates a binary expression. `and`/`or` are handled first
// since they must short-circuit their right operand.
func (e *Evaluator) evalBinary(b *parser.BinaryExpr, sc *scope.Scope) (objects.Object, *objects.Signal) {
	switch b.Op {
	case "and":
		left, sig := e.evalExpr(b.Left, sc)
		if sig != nil {
			return nil, sig
		}
		if !isTruthy(left) {
			return left, nil
		}
		return e.evalExpr(b.Right, sc)
	case "or":
		left, sig := e.evalExpr(b.Left, sc)
		if sig != nil {
			return nil, sig
		}
		if isTruthy(left) {
			return left, nil
		}
		return e.evalExpr(b.Right, sc)
	}

	left, sig := e.evalExpr(b.Left, sc)
	if sig != nil {
		return nil, sig
	}
	right, sig := e.evalExpr(b.Right, sc)
	if sig != nil {
		return nil, sig
	}

	switch b.Op {
	case "+":
		return addOp(left, right)
	case "-":
		return subOp(left, right)
	case "*":
		return mulOp(left, right)
	case "/":
		return divOp(left, right)
	case "%":
		return modOp(left, right)
	case "^":
		return powOp(left, right)
	case "<":
		return ltOp(left, right)
	case ">":
		return gtOp(left, right)
	case "=":
		return &objects.Boolean{Value: structurallyEqual(left, right)}, nil
	case "#":
		return &objects.Boolean{Value: !structurallyEqual(left, right)}, nil
	default:
		return nil, objects.Errorf("internal: unknown binary operator %q", b.Op)
	}
}

func addOp(left, right objects.Object) (objects.Object, *objects.Signal) {
	switch l := left.(type) {
	case *objects.Integer:
		r, ok := right.(*objects.Integer)
		if !ok {
			return nil, typeErr("+", left, right)
		}
		return &objects.Integer{Value: l.Value + r.Value}, nil
	case *objects.String:
		r, ok := right.(*objects.String)
		if !ok {
			return nil, typeErr("+", left, right)
		}
		return &objects.String{Value: l.Value + r.Value}, nil
	case *objects.Array:
		r, ok := right.(*objects.Array)
		if !ok {
			return nil, typeErr("+", left, right)
		}
		combined := make([]objects.Object, 0, len(l.Elements)+len(r.Elements))
		combined = append(combined, l.Elements...)
		combined = append(combined, r.Elements...)
		return &objects.Array{Elements: combined}, nil
	default:
		return nil, typeErr("+", left, right)
	}
}

func subOp(left, right objects.Object) (objects.Object, *objects.Signal) {
	l, ok := left.(*objects.Integer)
	if !ok {
		return nil, typeErr("-", left, right)
	}
	r, ok := right.(*objects.Integer)
	if !ok {
		return nil, typeErr("-", left, right)
	}
	return &objects.Integer{Value: l.Value - r.Value}, nil
}

// mulOp supports int*int and, per §9's resolved open question, array*int
// repetition sharing element references (no deep copy).
func mulOp(left, right objects.Object) (objects.Object, *objects.Signal) {
	if arr, ok := left.(*objects.Array); ok {
		n, ok := right.(*objects.Integer)
		if !ok {
			return nil, typeErr("*", left, right)
		}
		if n.Value < 0 {
			return nil, objects.Errorf("Cannot repeat an array a negative number of times.")
		}
		out := make([]objects.Object, 0, int64(len(arr.Elements))*n.Value)
		for i := int64(0); i < n.Value; i++ {
			out = append(out, arr.Elements...)
		}
		return &objects.Array{Elements: out}, nil
	}
	l, ok := left.(*objects.Integer)
	if !ok {
		return nil, typeErr("*", left, right)
	}
	r, ok := right.(*objects.Integer)
	if !ok {
		return nil, typeErr("*", left, right)
	}
	return &objects.Integer{Value: l.Value * r.Value}, nil
}

func divOp(left, right objects.Object) (objects.Object, *objects.Signal) {
	l, ok := left.(*objects.Integer)
	if !ok {
		return nil, typeErr("/", left, right)
	}
	r, ok := right.(*objects.Integer)
	if !ok {
		return nil, typeErr("/", left, right)
	}
	if r.Value == 0 {
		return nil, objects.Errorf("Division by zero.")
	}
	return &objects.Integer{Value: floorDiv(l.Value, r.Value)}, nil
}

// modOp is overloaded per §4.4: against an integer it is arithmetic
// modulo (with the same division-by-zero guard as `/`); against an
// array, dic, or string it is a containment test.
func modOp(left, right objects.Object) (objects.Object, *objects.Signal) {
	switch right.(type) {
	case *objects.Array, *objects.Dict, *objects.String:
		return containment(left, right)
	}
	l, ok := left.(*objects.Integer)
	if !ok {
		return nil, typeErr("%", left, right)
	}
	r, ok := right.(*objects.Integer)
	if !ok {
		return nil, typeErr("%", left, right)
	}
	if r.Value == 0 {
		return nil, objects.Errorf("Division by zero.")
	}
	return &objects.Integer{Value: floorMod(l.Value, r.Value)}, nil
}

// powOp is integer exponentiation; negative exponents are unspecified by
// the language's test suite, so we reject them rather than guess.
func powOp(left, right objects.Object) (objects.Object, *objects.Signal) {
	l, ok := left.(*objects.Integer)
	if !ok {
		return nil, typeErr("^", left, right)
	}
	r, ok := right.(*objects.Integer)
	if !ok {
		return nil, typeErr("^", left, right)
	}
	if r.Value < 0 {
		return nil, objects.Errorf("`^` does not support negative exponents.")
	}
	result := int64(1)
	for i := int64(0); i < r.Value; i++ {
		result *= l.Value
	}
	return &objects.Integer{Value: result}, nil
}

func ltOp(left, right objects.Object) (objects.Object, *objects.Signal) {
	switch l := left.(type) {
	case *objects.Integer:
		r, ok := right.(*objects.Integer)
		if !ok {
			return nil, typeErr("<", left, right)
		}
		return &objects.Boolean{Value: l.Value < r.Value}, nil
	case *objects.String:
		r, ok := right.(*objects.String)
		if !ok {
			return nil, typeErr("<", left, right)
		}
		return &objects.Boolean{Value: l.Value < r.Value}, nil
	default:
		return nil, typeErr("<", left, right)
	}
}

func gtOp(left, right objects.Object) (objects.Object, *objects.Signal) {
	switch l := left.(type) {
	case *objects.Integer:
		r, ok := right.(*objects.Integer)
		if !ok {
			return nil, typeErr(">", left, right)
		}
		return &objects.Boolean{Value: l.Value > r.Value}, nil
	case *objects.String:
		r, ok := right.(*objects.String)
		if !ok {
			return nil, typeErr(">", left, right)
		}
		return &objects.Boolean{Value: l.Value > r.Value}, nil
	default:
		return nil, typeErr(">", left, right)
	}
}

func typeErr(op string, left, right objects.Object) *objects.Signal {
	return objects.Errorf("`%s` does not support %s and %s.", op, left.Type(), right.Type())
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// containment implements `%`'s overload: elem's membership in coll.
func containment(elem, coll objects.Object) (objects.Object, *objects.Signal) {
	switch c := coll.(type) {
	case *objects.Array:
		for _, v := range c.Elements {
			if structurallyEqual(elem, v) {
				return &objects.Boolean{Value: true}, nil
			}
		}
		return &objects.Boolean{Value: false}, nil
	case *objects.Dict:
		key, ok := elem.(*objects.String)
		if !ok {
			return &objects.Boolean{Value: false}, nil
		}
		_, ok = c.Get(key.Value)
		return &objects.Boolean{Value: ok}, nil
	case *objects.String:
		key, ok := elem.(*objects.String)
		if !ok {
			return nil, typeErr("%", elem, coll)
		}
		return &objects.Boolean{Value: strings.Contains(c.Value, key.Value)}, nil
	default:
		return nil, typeErr("%", elem, coll)
	}
}

// structurallyEqual implements §4.4's equality rule: value equality for
// primitives and arrays (element-wise, recursive), reference identity for
// dictionaries, closures, and builtins.
func structurallyEqual(a, b objects.Object) bool {
	switch x := a.(type) {
	case *objects.Integer:
		y, ok := b.(*objects.Integer)
		return ok && x.Value == y.Value
	case *objects.Boolean:
		y, ok := b.(*objects.Boolean)
		return ok && x.Value == y.Value
	case *objects.Null:
		_, ok := b.(*objects.Null)
		return ok
	case *objects.String:
		y, ok := b.(*objects.String)
		return ok && x.Value == y.Value
	case *objects.Array:
		y, ok := b.(*objects.Array)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !structurallyEqual(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *objects.Dict:
		y, ok := b.(*objects.Dict)
		return ok && x == y
	case *function.Closure:
		y, ok := b.(*function.Closure)
		return ok && x == y
	case *objects.Builtin:
		y, ok := b.(*objects.Builtin)
		return ok && x == y
	default:
		return false
	}
}

func (e *Evaluator) evalCall(c *parser.CallExpr, sc *scope.Scope) (objects.Object, *objects.Signal) {
	fn, sig := e.evalExpr(c.Callee, sc)
	if sig != nil {
		return nil, sig
	}
	args := make([]objects.Object, len(c.Args))
	for i, a := range c.Args {
		v, sig := e.evalExpr(a, sc)
		if sig != nil {
			return nil, sig
		}
		args[i] = v
	}
	return e.callValue(fn, args)
}

// callValue invokes fn (a closure or builtin) with already-evaluated
// args. It is also the implementation behind objects.Runtime, letting
// builtins call back into minilang values.
func (e *Evaluator) callValue(fn objects.Object, args []objects.Object) (objects.Object, *objects.Signal) {
	switch f := fn.(type) {
	case *objects.Builtin:
		return f.Fn(e, args)
	case *function.Closure:
		if len(args) != len(f.Params) {
			return nil, objects.Errorf("Expected %d argument(s), got %d.", len(f.Params), len(args))
		}
		callScope := scope.New(f.Env)
		for i, p := range f.Params {
			if sig := callScope.Define(p, args[i]); sig != nil {
				return nil, sig
			}
		}
		sig := e.evalStmts(f.Body.Stmts, callScope)
		if sig == nil {
			return &objects.Null{}, nil
		}
		switch sig.Kind {
		case objects.SigReturn:
			return sig.Value, nil
		case objects.SigBreak:
			return nil, objects.Errorf("Break outside loop.")
		case objects.SigContinue:
			return nil, objects.Errorf("Continue outside loop.")
		default:
			return nil, sig
		}
	default:
		return nil, objects.Errorf("Value of type %s is not callable.", fn.Type())
	}
}
