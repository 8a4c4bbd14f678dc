package eval

import (
	"fmt"

	"github.com/minilang-go/minilang/objects"
	"github.com/minilang-go/minilang/parser"
	"github.com/minilang-go/minilang/scope"
)

// evalStmt dispatches on the statement's concrete AST type. The tag that
// spec.md's tagged-tuple AST carries in its first element is, here, simply
// the Go type switched on below.
func (e *Evaluator) evalStmt(stmt parser.Stmt, sc *scope.Scope) *objects.Signal {
	switch s := stmt.(type) {
	case *parser.Block:
		child := scope.New(sc)
		return e.evalStmts(s.Stmts, child)
	case *parser.VarStmt:
		return e.evalVar(s, sc)
	case *parser.SetStmt:
		return e.evalSet(s, sc)
	case *parser.IfStmt:
		return e.evalIf(s, sc)
	case *parser.WhileStmt:
		return e.evalWhile(s, sc)
	case *parser.ForStmt:
		return e.evalFor(s, sc)
	case *parser.BreakStmt:
		return &objects.Signal{Kind: objects.SigBreak}
	case *parser.ContinueStmt:
		return &objects.Signal{Kind: objects.SigContinue}
	case *parser.ReturnStmt:
		return e.evalReturn(s, sc)
	case *parser.PrintStmt:
		return e.evalPrint(s, sc)
	case *parser.ExprStmt:
		_, sig := e.evalExpr(s.Value, sc)
		return sig
	default:
		return objects.Errorf("internal: unknown statement node %T", stmt)
	}
}

// evalVar handles `var NAME = EXPR;`. The grammar admits a suffixed
// target (`var a[0] = …`); per §9's open question we reject that at
// evaluation time rather than silently reinterpreting it as `set`.
func (e *Evaluator) evalVar(s *parser.VarStmt, sc *scope.Scope) *objects.Signal {
	ident, ok := s.Target.(*parser.Ident)
	if !ok {
		return objects.Errorf("Illegal assignment.")
	}
	val, sig := e.evalExpr(s.Value, sc)
	if sig != nil {
		return sig
	}
	return sc.Define(ident.Name, val)
}

// evalSet handles `set TARGET = EXPR;` for all three target shapes: a
// bare name, an index target, and a dot target.
func (e *Evaluator) evalSet(s *parser.SetStmt, sc *scope.Scope) *objects.Signal {
	switch target := s.Target.(type) {
	case *parser.Ident:
		val, sig := e.evalExpr(s.Value, sc)
		if sig != nil {
			return sig
		}
		return sc.Assign(target.Name, val)

	case *parser.IndexExpr:
		container, sig := e.evalExpr(target.Recv, sc)
		if sig != nil {
			return sig
		}
		key, sig := e.evalExpr(target.Key, sc)
		if sig != nil {
			return sig
		}
		val, sig := e.evalExpr(s.Value, sc)
		if sig != nil {
			return sig
		}
		return setIndex(container, key, val)

	case *parser.DotExpr:
		container, sig := e.evalExpr(target.Recv, sc)
		if sig != nil {
			return sig
		}
		val, sig := e.evalExpr(s.Value, sc)
		if sig != nil {
			return sig
		}
		d, ok := container.(*objects.Dict)
		if !ok {
			return objects.Errorf("Illegal assignment.")
		}
		d.Set(target.Key.Value, val)
		return nil

	default:
		return objects.Errorf("Illegal assignment.")
	}
}

func setIndex(container, key, val objects.Object) *objects.Signal {
	switch c := container.(type) {
	case *objects.Array:
		idx, ok := key.(*objects.Integer)
		if !ok {
			return objects.Errorf("Illegal assignment.")
		}
		if idx.Value < 0 || idx.Value >= int64(len(c.Elements)) {
			return objects.Errorf("Index out of range.")
		}
		c.Elements[idx.Value] = val
		return nil
	case *objects.Dict:
		ks, ok := key.(*objects.String)
		if !ok {
			return objects.Errorf("Illegal assignment.")
		}
		c.Set(ks.Value, val)
		return nil
	default:
		return objects.Errorf("Illegal assignment.")
	}
}

// loopSignal interprets a signal produced inside a loop body: break and
// continue are absorbed (stop=true/false respectively), everything else
// (return, error) propagates past the loop.
func loopSignal(sig *objects.Signal) (stop bool, out *objects.Signal) {
	if sig == nil {
		return false, nil
	}
	switch sig.Kind {
	case objects.SigBreak:
		return true, nil
	case objects.SigContinue:
		return false, nil
	default:
		return true, sig
	}
}

func (e *Evaluator) evalWhile(s *parser.WhileStmt, sc *scope.Scope) *objects.Signal {
	for {
		cond, sig := e.evalExpr(s.Cond, sc)
		if sig != nil {
			return sig
		}
		if !isTruthy(cond) {
			return nil
		}
		if stop, out := loopSignal(e.evalStmt(s.Body, sc)); stop {
			return out
		}
	}
}

// evalFor binds Name once in a scope created for the whole loop (§4.3),
// re-assigning it each iteration rather than re-declaring it, then runs
// the body in a fresh child scope per iteration.
func (e *Evaluator) evalFor(s *parser.ForStmt, sc *scope.Scope) *objects.Signal {
	iter, sig := e.evalExpr(s.Iter, sc)
	if sig != nil {
		return sig
	}
	loopScope := scope.New(sc)
	if sig := loopScope.Define(s.Name, &objects.Null{}); sig != nil {
		return sig
	}
	step := func(v objects.Object) *objects.Signal {
		if sig := loopScope.Assign(s.Name, v); sig != nil {
			return sig
		}
		return e.evalStmts(s.Body.Stmts, scope.New(loopScope))
	}
	switch it := iter.(type) {
	case *objects.String:
		for i := 0; i < len(it.Value); i++ {
			if stop, out := loopSignal(step(&objects.String{Value: it.Value[i : i+1]})); stop {
				return out
			}
		}
	case *objects.Array:
		for _, el := range it.Elements {
			if stop, out := loopSignal(step(el)); stop {
				return out
			}
		}
	case *objects.Dict:
		// Every key, including "__"-prefixed ones: unlike the `keys`
		// builtin, `for` does not hide them.
		for _, k := range it.Keys {
			if stop, out := loopSignal(step(&objects.String{Value: k})); stop {
				return out
			}
		}
	default:
		return objects.Errorf("`for` requires a string, array, or dic, got %s.", it.Type())
	}
	return nil
}

func (e *Evaluator) evalIf(s *parser.IfStmt, sc *scope.Scope) *objects.Signal {
	cond, sig := e.evalExpr(s.Cond, sc)
	if sig != nil {
		return sig
	}
	if isTruthy(cond) {
		return e.evalStmt(s.Then, sc)
	}
	return e.evalStmt(s.Else, sc)
}

func (e *Evaluator) evalReturn(s *parser.ReturnStmt, sc *scope.Scope) *objects.Signal {
	if s.Value == nil {
		return objects.Return(&objects.Null{})
	}
	val, sig := e.evalExpr(s.Value, sc)
	if sig != nil {
		return sig
	}
	return objects.Return(val)
}

func (e *Evaluator) evalPrint(s *parser.PrintStmt, sc *scope.Scope) *objects.Signal {
	val, sig := e.evalExpr(s.Value, sc)
	if sig != nil {
		return sig
	}
	if e.Writer != nil {
		fmt.Fprintln(e.Writer, val.Print())
	} else {
		e.Output = append(e.Output, val.Print())
	}
	return nil
}
