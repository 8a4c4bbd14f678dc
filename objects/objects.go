// Package objects defines minilang's runtime value model: the tagged union
// of values an evaluated expression can produce, and the non-local
// "signal" a statement evaluation can produce instead of completing
// normally (break, continue, return, or a fatal error).
package objects

import (
	"fmt"
	"strings"
)

// Type identifies the kind of a runtime Object.
type Type string

const (
	IntegerType Type = "int"
	BooleanType Type = "bool"
	NullType    Type = "null"
	StringType  Type = "str"
	ArrayType   Type = "arr"
	DictType    Type = "dic"
	ClosureType Type = "func"
	BuiltinType Type = "builtin"
)

// Object is implemented by every minilang runtime value.
type Object interface {
	Type() Type
	// Print returns the §4.5 print-stringification of the value.
	Print() string
}

// Integer is a 64-bit two's complement minilang integer.
type Integer struct{ Value int64 }

func (i *Integer) Type() Type    { return IntegerType }
func (i *Integer) Print() string { return fmt.Sprintf("%d", i.Value) }

// Boolean is a minilang boolean.
type Boolean struct{ Value bool }

func (b *Boolean) Type() Type { return BooleanType }
func (b *Boolean) Print() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Null is minilang's single null value. All nulls compare equal; there is
// no need for more than one instance, but none is enforced.
type Null struct{}

func (n *Null) Type() Type    { return NullType }
func (n *Null) Print() string { return "null" }

// String is an immutable byte sequence.
type String struct{ Value string }

func (s *String) Type() Type    { return StringType }
func (s *String) Print() string { return s.Value }

// Array is a mutable, ordered, reference-shared sequence. Every binding
// that holds the same *Array sees the other's mutations.
type Array struct{ Elements []Object }

func (a *Array) Type() Type { return ArrayType }
func (a *Array) Print() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.Print()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Dict is a mutable, insertion-ordered, reference-shared string-keyed
// mapping. Keys is the insertion order; Entries is the backing map. The
// key "__proto__", when present, points at another *Dict consulted by
// prototype lookup (see eval.resolveDot).
type Dict struct {
	Keys    []string
	Entries map[string]Object
}

// NewDict returns an empty, ready-to-use dictionary.
func NewDict() *Dict {
	return &Dict{Entries: make(map[string]Object)}
}

func (d *Dict) Type() Type { return DictType }

func (d *Dict) Print() string {
	parts := make([]string, len(d.Keys))
	for i, k := range d.Keys {
		parts[i] = k + ": " + d.Entries[k].Print()
	}
	return "$[" + strings.Join(parts, ", ") + "]"
}

// Get returns the value owned directly by this dictionary (no prototype
// walk), and whether the key is present.
func (d *Dict) Get(key string) (Object, bool) {
	v, ok := d.Entries[key]
	return v, ok
}

// Set inserts or overwrites key, appending it to Keys the first time it is
// seen so iteration order stays insertion order.
func (d *Dict) Set(key string, v Object) {
	if d.Entries == nil {
		d.Entries = make(map[string]Object)
	}
	if _, exists := d.Entries[key]; !exists {
		d.Keys = append(d.Keys, key)
	}
	d.Entries[key] = v
}

// VisibleKeys returns Keys filtered to those not starting with "__", in
// insertion order — the set the `keys` builtin exposes.
func (d *Dict) VisibleKeys() []string {
	var out []string
	for _, k := range d.Keys {
		if !strings.HasPrefix(k, "__") {
			out = append(out, k)
		}
	}
	return out
}

// Builtin is a host-implemented callable. Fn receives the evaluated
// arguments and a Runtime to call back into minilang closures (none of
// the builtins in package std calls back this way). Defined here rather
// than in package eval so Object implementations never need to import the
// evaluator.
type Builtin struct {
	Name string
	Fn   func(rt Runtime, args []Object) (Object, *Signal)
}

func (b *Builtin) Type() Type    { return BuiltinType }
func (b *Builtin) Print() string { return "<builtin>" }

// Runtime is the slice of the evaluator a Builtin is allowed to see: the
// ability to invoke a closure or builtin value with already-evaluated
// arguments.
type Runtime interface {
	Call(fn Object, args []Object) (Object, *Signal)
}

// SignalKind distinguishes the non-local outcomes a statement evaluation
// can produce instead of completing normally.
type SignalKind int

const (
	SigBreak SignalKind = iota
	SigContinue
	SigReturn
	SigError
)

// Signal is the "completion" a statement evaluator hands back up the call
// stack in place of an exception: normal completion is represented by a
// nil *Signal, so every statement-evaluating function returns *Signal and
// callers test it against nil before continuing.
type Signal struct {
	Kind    SignalKind
	Value   Object // populated for SigReturn
	Message string // populated for SigError
}

// Errorf builds a SigError signal with a formatted message.
func Errorf(format string, args ...interface{}) *Signal {
	return &Signal{Kind: SigError, Message: fmt.Sprintf(format, args...)}
}

// Return builds a SigReturn signal wrapping v.
func Return(v Object) *Signal {
	return &Signal{Kind: SigReturn, Value: v}
}
