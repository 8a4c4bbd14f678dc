package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err)
	return prog
}

func TestParseEmptyProgram(t *testing.T) {
	prog := mustParse(t, "")
	require.Empty(t, prog.Stmts)
}

func TestParsePrintLiteral(t *testing.T) {
	prog := mustParse(t, "print 123;")
	want := &Program{Stmts: []Stmt{&PrintStmt{Value: &IntLit{Value: 123}}}}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog := mustParse(t, "print 5 + 6 * 7;")
	want := &BinaryExpr{
		Op:   "+",
		Left: &IntLit{Value: 5},
		Right: &BinaryExpr{
			Op:    "*",
			Left:  &IntLit{Value: 6},
			Right: &IntLit{Value: 7},
		},
	}
	got := prog.Stmts[0].(*PrintStmt).Value
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePowRightAssociative(t *testing.T) {
	prog := mustParse(t, "print 2 ^ 2 ^ 3;")
	want := &BinaryExpr{
		Op:   "^",
		Left: &IntLit{Value: 2},
		Right: &BinaryExpr{
			Op:    "^",
			Left:  &IntLit{Value: 2},
			Right: &IntLit{Value: 3},
		},
	}
	got := prog.Stmts[0].(*PrintStmt).Value
	require.Equal(t, want, got)
}

func TestParseVarWithSuffixTargetStillParses(t *testing.T) {
	// The grammar admits `var a[0] = …` syntactically; the evaluator is
	// responsible for rejecting it (§9 open question).
	prog := mustParse(t, "var a[0] = 1;")
	stmt := prog.Stmts[0].(*VarStmt)
	_, ok := stmt.Target.(*IndexExpr)
	require.True(t, ok)
}

func TestParseIfElifElse(t *testing.T) {
	prog := mustParse(t, "if a { print 1; } elif b { print 2; } else { print 3; }")
	ifStmt := prog.Stmts[0].(*IfStmt)
	require.IsType(t, &IfStmt{}, ifStmt.Else)
	elif := ifStmt.Else.(*IfStmt)
	require.IsType(t, &Block{}, elif.Else)
}

func TestParseDefDesugarsToVarFunc(t *testing.T) {
	prog := mustParse(t, "def add(a, b) { return a + b; }")
	v := prog.Stmts[0].(*VarStmt)
	require.Equal(t, "add", v.Target.(*Ident).Name)
	fn := v.Value.(*FuncLit)
	require.Equal(t, []string{"a", "b"}, fn.Params)
}

func TestParseDotAndIndexChain(t *testing.T) {
	prog, err := Parse("print a.b[0];")
	require.NoError(t, err)
	idx := prog.Stmts[0].(*PrintStmt).Value.(*IndexExpr)
	dot := idx.Recv.(*DotExpr)
	require.Equal(t, "b", dot.Key.Value)
}

func TestParseErrorUnexpectedToken(t *testing.T) {
	_, err := Parse("print ;")
	require.EqualError(t, err, "Unexpected token `;`.")
}

func TestParseErrorExpectedSemicolon(t *testing.T) {
	_, err := Parse("print 5")
	require.EqualError(t, err, "Expected `;`, found `$EOF`.")
}

func TestParseErrorExpectedSemicolonColon(t *testing.T) {
	_, err := Parse("print 5:")
	require.EqualError(t, err, "Expected `;`, found `:`.")
}

func TestParseDictLiteral(t *testing.T) {
	prog := mustParse(t, "print $[val: 5, other: 6];")
	dict := prog.Stmts[0].(*PrintStmt).Value.(*DictLit)
	require.Equal(t, []string{"val", "other"}, dict.Keys)
}
