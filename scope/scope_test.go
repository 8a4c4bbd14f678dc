package scope

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minilang-go/minilang/objects"
)

func TestDefineRejectsRedeclarationInSameScope(t *testing.T) {
	s := New(nil)
	require.Nil(t, s.Define("x", &objects.Integer{Value: 1}))
	sig := s.Define("x", &objects.Integer{Value: 2})
	require.NotNil(t, sig)
	require.Equal(t, "`x` already defined.", sig.Message)
}

func TestDefineAllowsShadowingOuterScope(t *testing.T) {
	outer := New(nil)
	require.Nil(t, outer.Define("x", &objects.Integer{Value: 1}))
	inner := New(outer)
	require.Nil(t, inner.Define("x", &objects.Integer{Value: 2}))

	v, sig := inner.Get("x")
	require.Nil(t, sig)
	require.Equal(t, int64(2), v.(*objects.Integer).Value)
}

func TestGetWalksParentChain(t *testing.T) {
	outer := New(nil)
	require.Nil(t, outer.Define("x", &objects.Integer{Value: 7}))
	inner := New(outer)

	v, sig := inner.Get("x")
	require.Nil(t, sig)
	require.Equal(t, int64(7), v.(*objects.Integer).Value)
}

func TestGetUnboundNameFails(t *testing.T) {
	s := New(nil)
	_, sig := s.Get("missing")
	require.NotNil(t, sig)
	require.Equal(t, "`missing` not defined.", sig.Message)
}

func TestAssignWritesToOwningScope(t *testing.T) {
	outer := New(nil)
	require.Nil(t, outer.Define("x", &objects.Integer{Value: 1}))
	inner := New(outer)

	require.Nil(t, inner.Assign("x", &objects.Integer{Value: 99}))

	v, _ := outer.Get("x")
	require.Equal(t, int64(99), v.(*objects.Integer).Value)
}

func TestAssignUnboundNameFails(t *testing.T) {
	s := New(nil)
	sig := s.Assign("missing", &objects.Integer{Value: 1})
	require.NotNil(t, sig)
	require.Equal(t, "`missing` not defined.", sig.Message)
}
