package std

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minilang-go/minilang/objects"
)

func find(t *testing.T, name string) *objects.Builtin {
	t.Helper()
	for _, b := range All() {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("builtin %q not registered", name)
	return nil
}

func TestLessComparesIntsAndStrings(t *testing.T) {
	less := find(t, "less")
	v, sig := less.Fn(nil, []objects.Object{&objects.Integer{Value: 1}, &objects.Integer{Value: 2}})
	require.Nil(t, sig)
	require.True(t, v.(*objects.Boolean).Value)

	v, sig = less.Fn(nil, []objects.Object{&objects.String{Value: "b"}, &objects.String{Value: "a"}})
	require.Nil(t, sig)
	require.False(t, v.(*objects.Boolean).Value)
}

func TestPushAppendsInPlace(t *testing.T) {
	push := find(t, "push")
	arr := &objects.Array{Elements: []objects.Object{&objects.Integer{Value: 1}}}
	_, sig := push.Fn(nil, []objects.Object{arr, &objects.Integer{Value: 2}})
	require.Nil(t, sig)
	require.Len(t, arr.Elements, 2)
}

func TestPopRemovesLastElement(t *testing.T) {
	pop := find(t, "pop")
	arr := &objects.Array{Elements: []objects.Object{&objects.Integer{Value: 1}, &objects.Integer{Value: 2}}}
	v, sig := pop.Fn(nil, []objects.Object{arr})
	require.Nil(t, sig)
	require.Equal(t, int64(2), v.(*objects.Integer).Value)
	require.Len(t, arr.Elements, 1)
}

func TestPopOnEmptyArrayErrors(t *testing.T) {
	pop := find(t, "pop")
	_, sig := pop.Fn(nil, []objects.Object{&objects.Array{}})
	require.NotNil(t, sig)
}

func TestLenOnStringAndArray(t *testing.T) {
	length := find(t, "len")
	v, sig := length.Fn(nil, []objects.Object{&objects.String{Value: "abc"}})
	require.Nil(t, sig)
	require.Equal(t, int64(3), v.(*objects.Integer).Value)

	v, sig = length.Fn(nil, []objects.Object{&objects.Array{Elements: []objects.Object{&objects.Null{}, &objects.Null{}}}})
	require.Nil(t, sig)
	require.Equal(t, int64(2), v.(*objects.Integer).Value)
}

func TestKeysHidesDunderPrefixedNames(t *testing.T) {
	keys := find(t, "keys")
	d := objects.NewDict()
	d.Set("__proto__", &objects.Null{})
	d.Set("a", &objects.Integer{Value: 1})
	v, sig := keys.Fn(nil, []objects.Object{d})
	require.Nil(t, sig)
	arr := v.(*objects.Array)
	require.Len(t, arr.Elements, 1)
	require.Equal(t, "a", arr.Elements[0].(*objects.String).Value)
}

func TestToPrintStringifiesValue(t *testing.T) {
	toPrint := find(t, "to_print")
	v, sig := toPrint.Fn(nil, []objects.Object{&objects.Integer{Value: 42}})
	require.Nil(t, sig)
	require.Equal(t, "42", v.(*objects.String).Value)
}

func TestFirstAndRest(t *testing.T) {
	first := find(t, "first")
	rest := find(t, "rest")
	arr := &objects.Array{Elements: []objects.Object{
		&objects.Integer{Value: 1}, &objects.Integer{Value: 2}, &objects.Integer{Value: 3},
	}}

	v, sig := first.Fn(nil, []objects.Object{arr})
	require.Nil(t, sig)
	require.Equal(t, int64(1), v.(*objects.Integer).Value)

	v, sig = rest.Fn(nil, []objects.Object{arr})
	require.Nil(t, sig)
	tail := v.(*objects.Array)
	require.Len(t, tail.Elements, 2)
	require.Equal(t, int64(2), tail.Elements[0].(*objects.Integer).Value)
}

func TestTypeOfReportsStrForString(t *testing.T) {
	typeOf := find(t, "type")
	v, sig := typeOf.Fn(nil, []objects.Object{&objects.String{Value: "x"}})
	require.Nil(t, sig)
	require.Equal(t, "str", v.(*objects.String).Value)
}

func TestErrorBuiltinAbortsWithMessage(t *testing.T) {
	errorFn := find(t, "error")
	_, sig := errorFn.Fn(nil, []objects.Object{&objects.String{Value: "boom"}})
	require.NotNil(t, sig)
	require.Equal(t, objects.SigError, sig.Kind)
	require.Equal(t, "boom", sig.Message)
}

func TestArityMismatchErrors(t *testing.T) {
	length := find(t, "len")
	_, sig := length.Fn(nil, []objects.Object{})
	require.NotNil(t, sig)
}
