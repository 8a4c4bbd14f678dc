package eval

import (
	"github.com/minilang-go/minilang/function"
	"github.com/minilang-go/minilang/objects"
	"github.com/minilang-go/minilang/parser"
	"github.com/minilang-go/minilang/scope"
)

// evalIndexExpr handles `RECV[KEY]` — plain indexing, with no prototype
// walk or UFCS binding (those are `.NAME` sugar's job, below).
func (e *Evaluator) evalIndexExpr(ix *parser.IndexExpr, sc *scope.Scope) (objects.Object, *objects.Signal) {
	recv, sig := e.evalExpr(ix.Recv, sc)
	if sig != nil {
		return nil, sig
	}
	key, sig := e.evalExpr(ix.Key, sc)
	if sig != nil {
		return nil, sig
	}
	switch r := recv.(type) {
	case *objects.Array:
		idx, ok := key.(*objects.Integer)
		if !ok {
			return nil, objects.Errorf("Array index must be an int, got %s.", key.Type())
		}
		if idx.Value < 0 || idx.Value >= int64(len(r.Elements)) {
			return nil, objects.Errorf("Index out of range.")
		}
		return r.Elements[idx.Value], nil
	case *objects.Dict:
		k, ok := key.(*objects.String)
		if !ok {
			return nil, objects.Errorf("Dic index must be a string, got %s.", key.Type())
		}
		v, ok := r.Get(k.Value)
		if !ok {
			return nil, objects.Errorf("Key `%s` not defined.", k.Value)
		}
		return v, nil
	case *objects.String:
		idx, ok := key.(*objects.Integer)
		if !ok {
			return nil, objects.Errorf("String index must be an int, got %s.", key.Type())
		}
		if idx.Value < 0 || idx.Value >= int64(len(r.Value)) {
			return nil, objects.Errorf("Index out of range.")
		}
		return &objects.String{Value: string(r.Value[idx.Value])}, nil
	default:
		return nil, objects.Errorf("Index must be applied to an array, a dic or a string.")
	}
}

// resolveDot implements §4.4's prototype-chain walk: owns-key wins, else
// follow __proto__ repeatedly, else fall back to the lexical environment.
// It returns the raw resolved value, unbound — UFCS binding happens in
// evalDotExpr against the ORIGINAL receiver, not whichever dict in the
// chain finally owned the name.
func (e *Evaluator) resolveDot(recv objects.Object, name string, sc *scope.Scope) (objects.Object, *objects.Signal) {
	cur := recv
	for {
		d, ok := cur.(*objects.Dict)
		if !ok {
			break
		}
		if v, ok := d.Get(name); ok {
			return v, nil
		}
		proto, ok := d.Get("__proto__")
		if !ok {
			break
		}
		cur = proto
	}
	return sc.Get(name)
}

func (e *Evaluator) evalDotExpr(d *parser.DotExpr, sc *scope.Scope) (objects.Object, *objects.Signal) {
	recv, sig := e.evalExpr(d.Recv, sc)
	if sig != nil {
		return nil, sig
	}
	val, sig := e.resolveDot(recv, d.Key.Value, sc)
	if sig != nil {
		return nil, sig
	}
	return bindUFCS(val, recv), nil
}

// bindUFCS makes `recv.NAME` sugar equal `NAME(recv, …)`: a resolved user
// function is bound with recv as `this`; a resolved builtin is partially
// applied with recv prepended; anything else passes through unchanged.
func bindUFCS(val objects.Object, recv objects.Object) objects.Object {
	switch v := val.(type) {
	case *function.Closure:
		return v.Bind(recv)
	case *objects.Builtin:
		return bindBuiltin(v, recv)
	default:
		return val
	}
}

func bindBuiltin(b *objects.Builtin, recv objects.Object) *objects.Builtin {
	fn := b.Fn
	return &objects.Builtin{
		Name: b.Name,
		Fn: func(rt objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
			full := make([]objects.Object, 0, len(args)+1)
			full = append(full, recv)
			full = append(full, args...)
			return fn(rt, full)
		},
	}
}
