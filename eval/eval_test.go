package eval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArithmeticPrecedence(t *testing.T) {
	out, err := Run("print 5 + 6 * 7;")
	require.NoError(t, err)
	require.Equal(t, []string{"47"}, out)
}

func TestWhileLoopAndMutation(t *testing.T) {
	out, err := Run("var i = 0; while i # 3 { print i; set i = i + 1; }")
	require.NoError(t, err)
	require.Equal(t, []string{"0", "1", "2"}, out)
}

func TestRecursiveFibonacci(t *testing.T) {
	src := `
		def fib(n) {
			if n = 1 or n = 2 { return 1; }
			return fib(n-1) + fib(n-2);
		}
		print fib(6);
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"8"}, out)
}

func TestImmediatelyCalledFuncLiteralReadsOuterBinding(t *testing.T) {
	src := `
		var b = 6;
		print func(a) { return a + b; }(5);
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"11"}, out)
}

func TestClosureSeesReassignmentAfterCreation(t *testing.T) {
	src := `
		var b = 1;
		var f = func(a) { return a + b; };
		set b = 100;
		print f(5);
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"105"}, out)
}

func TestUFCSOnDictMethodBindsThis(t *testing.T) {
	src := `
		var a = $[val: 5];
		set a.abc = func(this) { return 2 * this.val; };
		print a.abc();
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"10"}, out)
}

func TestUFCSOnBuiltin(t *testing.T) {
	src := `
		var a = [1, 2];
		a.push(3);
		print len(a);
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"3"}, out)
}

func TestPrototypeChainInheritedMethodBindsOriginalReceiver(t *testing.T) {
	src := `
		var base = $[greet: func(this) { return this.name; }];
		var child = $[__proto__: base, name: 'child'];
		print child.greet();
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"child"}, out)
}

func TestForIteratesAllDictKeysIncludingDunder(t *testing.T) {
	src := `
		var d = $[__proto__: null, a: 1];
		for k in d { print k; }
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"__proto__", "a"}, out)
}

func TestKeysBuiltinHidesDunderKeys(t *testing.T) {
	src := `
		var d = $[__proto__: null, a: 1];
		print keys(d);
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"[a]"}, out)
}

func TestShortCircuitAndOr(t *testing.T) {
	out, err := Run("print false and 1 / 0; print true or 1 / 0;")
	require.NoError(t, err)
	require.Equal(t, []string{"false", "true"}, out)
}

func TestStructuralEqualityOfArrays(t *testing.T) {
	out, err := Run("print [1, 2] = [1, 2]; print [1, 2] = [1, 2, 3];")
	require.NoError(t, err)
	require.Equal(t, []string{"true", "false"}, out)
}

func TestDivisionByZeroError(t *testing.T) {
	_, err := Run("print 5 / 0;")
	require.EqualError(t, err, "Division by zero.")
}

func TestAssignToUndeclaredNameError(t *testing.T) {
	_, err := Run("set a = 1;")
	require.EqualError(t, err, "`a` not defined.")
}

func TestBreakAtTopLevelError(t *testing.T) {
	_, err := Run("break;")
	require.EqualError(t, err, "Break at top level.")
}

func TestBreakOutsideLoopInsideFunctionError(t *testing.T) {
	_, err := Run("def f() { break; } f();")
	require.EqualError(t, err, "Break outside loop.")
}

func TestBreakExitsOnlyInnermostLoop(t *testing.T) {
	src := `
		var seen = [];
		for i in [1, 2] {
			for j in [1, 2] {
				if j = 2 { break; }
				seen.push(j);
			}
			seen.push(i);
		}
		print seen;
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"[1, 1, 1, 2]"}, out)
}

func TestArrayRepetitionSharesElements(t *testing.T) {
	src := `
		var base = $[n: 1];
		var arr = [base] * 2;
		set arr[0].n = 99;
		print arr[1].n;
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"99"}, out)
}

func TestContainmentOperatorAcrossArrayDictString(t *testing.T) {
	src := `
		print 2 % [1, 2, 3];
		print 'b' % $[b: 1];
		print 'a' % 'cat';
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"true", "true", "true"}, out)
}

func TestFloorDivisionAndModuloSigns(t *testing.T) {
	src := `
		print 7 / 2;
		print 7 % 2;
		print -7 / 2;
		print -7 % 2;
	`
	out, err := Run(src)
	require.NoError(t, err)
	require.Equal(t, []string{"3", "1", "-4", "1"}, out)
}
