// Package std seeds minilang's fixed builtin library: the host-provided
// callables every root environment starts with (§4.6).
package std

import (
	"github.com/minilang-go/minilang/objects"
)

// All returns a fresh slice of the builtins the evaluator seeds into the
// root scope. A fresh slice per call keeps any one Evaluator's builtins
// independent of another's, even though the callbacks themselves are
// stateless.
func All() []*objects.Builtin {
	return []*objects.Builtin{
		{Name: "less", Fn: less},
		{Name: "push", Fn: push},
		{Name: "pop", Fn: pop},
		{Name: "len", Fn: length},
		{Name: "keys", Fn: keys},
		{Name: "to_print", Fn: toPrint},
		{Name: "print_env", Fn: printEnv},
		{Name: "first", Fn: first},
		{Name: "rest", Fn: rest},
		{Name: "type", Fn: typeOf},
		{Name: "error", Fn: errorBuiltin},
	}
}

func arity(name string, args []objects.Object, n int) *objects.Signal {
	if len(args) != n {
		return objects.Errorf("`%s` expects %d argument(s), got %d.", name, n, len(args))
	}
	return nil
}

// less(a, b) -> a < b, reusing the same int/string ordering as the `<`
// operator (package eval's ltOp mirrors this; both exist because the
// builtin must not import package eval, which imports std).
func less(_ objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
	if sig := arity("less", args, 2); sig != nil {
		return nil, sig
	}
	switch a := args[0].(type) {
	case *objects.Integer:
		b, ok := args[1].(*objects.Integer)
		if !ok {
			return nil, objects.Errorf("`less` cannot compare int and %s.", args[1].Type())
		}
		return &objects.Boolean{Value: a.Value < b.Value}, nil
	case *objects.String:
		b, ok := args[1].(*objects.String)
		if !ok {
			return nil, objects.Errorf("`less` cannot compare str and %s.", args[1].Type())
		}
		return &objects.Boolean{Value: a.Value < b.Value}, nil
	default:
		return nil, objects.Errorf("`less` does not support type %s.", args[0].Type())
	}
}

// push(array, v) appends v to array in place and returns null.
func push(_ objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
	if sig := arity("push", args, 2); sig != nil {
		return nil, sig
	}
	arr, ok := args[0].(*objects.Array)
	if !ok {
		return nil, objects.Errorf("`push` expects an array, got %s.", args[0].Type())
	}
	arr.Elements = append(arr.Elements, args[1])
	return &objects.Null{}, nil
}

// pop(array) removes and returns the array's last element.
func pop(_ objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
	if sig := arity("pop", args, 1); sig != nil {
		return nil, sig
	}
	arr, ok := args[0].(*objects.Array)
	if !ok {
		return nil, objects.Errorf("`pop` expects an array, got %s.", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return nil, objects.Errorf("`pop` called on an empty array.")
	}
	last := arr.Elements[len(arr.Elements)-1]
	arr.Elements = arr.Elements[:len(arr.Elements)-1]
	return last, nil
}

// len(x) returns the integer length of a string or array.
func length(_ objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
	if sig := arity("len", args, 1); sig != nil {
		return nil, sig
	}
	switch v := args[0].(type) {
	case *objects.String:
		return &objects.Integer{Value: int64(len(v.Value))}, nil
	case *objects.Array:
		return &objects.Integer{Value: int64(len(v.Elements))}, nil
	default:
		return nil, objects.Errorf("`len` expects a string or array, got %s.", args[0].Type())
	}
}

// keys(dict) returns an array of the dictionary's non-"__" keys, in
// insertion order.
func keys(_ objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
	if sig := arity("keys", args, 1); sig != nil {
		return nil, sig
	}
	d, ok := args[0].(*objects.Dict)
	if !ok {
		return nil, objects.Errorf("`keys` expects a dic, got %s.", args[0].Type())
	}
	visible := d.VisibleKeys()
	elems := make([]objects.Object, len(visible))
	for i, k := range visible {
		elems[i] = &objects.String{Value: k}
	}
	return &objects.Array{Elements: elems}, nil
}

// to_print(v) returns v's §4.5 print-stringification as a minilang string.
func toPrint(_ objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
	if sig := arity("to_print", args, 1); sig != nil {
		return nil, sig
	}
	return &objects.String{Value: args[0].Print()}, nil
}

// print_env is a debugging aid with no required observable behavior; it
// returns null without side effects.
func printEnv(_ objects.Runtime, _ []objects.Object) (objects.Object, *objects.Signal) {
	return &objects.Null{}, nil
}

// first(a) returns an array's head element.
func first(_ objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
	if sig := arity("first", args, 1); sig != nil {
		return nil, sig
	}
	arr, ok := args[0].(*objects.Array)
	if !ok {
		return nil, objects.Errorf("`first` expects an array, got %s.", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return nil, objects.Errorf("`first` called on an empty array.")
	}
	return arr.Elements[0], nil
}

// rest(a) returns a new array holding every element but the first.
func rest(_ objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
	if sig := arity("rest", args, 1); sig != nil {
		return nil, sig
	}
	arr, ok := args[0].(*objects.Array)
	if !ok {
		return nil, objects.Errorf("`rest` expects an array, got %s.", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return &objects.Array{}, nil
	}
	tail := make([]objects.Object, len(arr.Elements)-1)
	copy(tail, arr.Elements[1:])
	return &objects.Array{Elements: tail}, nil
}

// type(v) returns one of int, bool, str, func, builtin, arr, dic, null.
func typeOf(_ objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
	if sig := arity("type", args, 1); sig != nil {
		return nil, sig
	}
	return &objects.String{Value: string(args[0].Type())}, nil
}

// error(msg) aborts evaluation, using msg verbatim as the error message.
func errorBuiltin(_ objects.Runtime, args []objects.Object) (objects.Object, *objects.Signal) {
	if sig := arity("error", args, 1); sig != nil {
		return nil, sig
	}
	msg, ok := args[0].(*objects.String)
	if !ok {
		return nil, objects.Errorf("`error` expects a string, got %s.", args[0].Type())
	}
	return nil, &objects.Signal{Kind: objects.SigError, Message: msg.Value}
}
