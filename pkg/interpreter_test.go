package lox

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"go.lox.dev/internal/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(n float64) *LiteralExpr {
	return &LiteralExpr{Typ: LiteralNumber, Number: n}
}

func str(s string) *LiteralExpr {
	return &LiteralExpr{Typ: LiteralString, Value: s}
}

func boolean(b bool) *LiteralExpr {
	return &LiteralExpr{Typ: LiteralBool, Bool: b}
}

func nilLiteral() *LiteralExpr {
	return &LiteralExpr{Typ: LiteralNil}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		data   string
		expect Value
	}{
		{"(5 - (3 - 1)) + -1", NumberValue(2)},
		{"1 + 2 * 3", NumberValue(7)},
		{"10 / 4", NumberValue(2.5)},
		{"1 / 0", NumberValue(math.Inf(1))},
		{"-1 / 0", NumberValue(math.Inf(-1))},
		{"\"foo\" + \"bar\"", StringValue("foobar")},
		{"\"\" + \"\"", StringValue("")},
		{"1 < 2", BoolValue(true)},
		{"2 <= 2", BoolValue(true)},
		{"1 > 2", BoolValue(false)},
		{"3 >= 4", BoolValue(false)},
		{"1 == 1", BoolValue(true)},
		{"1 == \"1\"", BoolValue(false)},
		{"true == 1", BoolValue(false)},
		{"nil == nil", BoolValue(true)},
		{"nil == false", BoolValue(false)},
		{"\"a\" == \"a\"", BoolValue(true)},
		{"\"a\" != \"b\"", BoolValue(true)},
		{"!nil", BoolValue(true)},
		{"!0", BoolValue(false)},
		{"!\"\"", BoolValue(false)},
		{"!!true", BoolValue(true)},
		{"--3", NumberValue(3)},
		{"(((1)))", NumberValue(1)},
		{"nil", NilValue{}},
	}

	i := NewInterpreter(&bytes.Buffer{})
	for _, c := range cases {
		v, err := i.Evaluate(parseExpression(t, c.data))
		require.NoError(t, err, c.data)

		assert.Equal(t, c.expect, v, c.data)
	}
}

func TestEvaluateNaN(t *testing.T) {
	i := NewInterpreter(&bytes.Buffer{})

	v, err := i.Evaluate(parseExpression(t, "0 / 0"))
	require.NoError(t, err)

	n, ok := v.(NumberValue)
	require.True(t, ok)
	assert.True(t, math.IsNaN(float64(n)))

	v, err = i.Evaluate(parseExpression(t, "0 / 0 == 0 / 0"))
	require.NoError(t, err)
	assert.Equal(t, BoolValue(false), v)
}

func TestEvaluateTypeErrors(t *testing.T) {
	cases := []struct {
		data string
		op   string
		msg  string
	}{
		{"2 * (3 / -\"muffin\")", "-", "can only negate a number"},
		{"-true", "-", "can only negate a number"},
		{"-nil", "-", "can only negate a number"},
		{"1 + \"a\"", "+", "operands must be two numbers or two strings"},
		{"\"a\" + 1", "+", "operands must be two numbers or two strings"},
		{"true + false", "+", "operands must be two numbers or two strings"},
		{"\"a\" - \"b\"", "-", "operands must be numbers"},
		{"\"a\" * 2", "*", "operands must be numbers"},
		{"1 / nil", "/", "operands must be numbers"},
		{"\"a\" < \"b\"", "<", "operands must be numbers"},
		{"true <= false", "<=", "operands must be numbers"},
		{"1 > nil", ">", "operands must be numbers"},
		{"nil >= nil", ">=", "operands must be numbers"},
	}

	i := NewInterpreter(&bytes.Buffer{})
	for _, c := range cases {
		v, err := i.Evaluate(parseExpression(t, c.data))
		assert.Nil(t, v, c.data)

		var runtimeErr *RuntimeError
		require.True(t, errors.As(err, &runtimeErr), c.data)
		assert.Equal(t, c.op, runtimeErr.Op, c.data)
		assert.Equal(t, c.msg, runtimeErr.Msg, c.data)
	}
}

func TestRuntimeErrorMessage(t *testing.T) {
	i := NewInterpreter(&bytes.Buffer{})

	_, err := i.Evaluate(parseExpression(t, "1 +\n\"a\" * 2"))
	require.Error(t, err)
	assert.Equal(t, "[line 2:5] runtime error: '*' operands must be numbers", err.Error())
}

func TestTruthiness(t *testing.T) {
	i := NewInterpreter(&bytes.Buffer{})

	cases := []struct {
		operand Expr
		expect  Value
	}{
		{nilLiteral(), BoolValue(true)},
		{boolean(false), BoolValue(true)},
		{boolean(true), BoolValue(false)},
		{num(0), BoolValue(false)},
		{str(""), BoolValue(false)},
	}

	for _, c := range cases {
		v, err := i.Evaluate(&UnaryExpr{Operation: UnaryNot, Operand: c.operand})
		require.NoError(t, err)
		assert.Equal(t, c.expect, v)
	}
}

func TestStringConcatenation(t *testing.T) {
	i := NewInterpreter(&bytes.Buffer{})

	v, err := i.Evaluate(&BinaryExpr{Operation: BinaryAddition, Op1: str("a"), Op2: str("b")})
	require.NoError(t, err)
	assert.Equal(t, StringValue("ab"), v)

	_, err = i.Evaluate(&BinaryExpr{Operation: BinaryAddition, Op1: num(1), Op2: str("a")})
	var runtimeErr *RuntimeError
	assert.True(t, errors.As(err, &runtimeErr))
}

func TestEvaluateIsIdempotent(t *testing.T) {
	i := NewInterpreter(&bytes.Buffer{})
	expr := parseExpression(t, "(\"a\" + \"b\") == \"ab\" != !(1 < 2 * 3)")
	before := PrintExpr(expr)

	first, err := i.Evaluate(expr)
	require.NoError(t, err)

	for n := 0; n < 5; n++ {
		v, err := i.Evaluate(expr)
		require.NoError(t, err)
		assert.Equal(t, first, v)
	}

	assert.Equal(t, before, PrintExpr(expr))
}

func TestExecutePrint(t *testing.T) {
	cases := []struct {
		data   string
		expect string
	}{
		{"print 1;", "1\n"},
		{"print 2.5;", "2.5\n"},
		{"print 10 / 4 * 2;", "5\n"},
		{"print -0;", "-0\n"},
		{"print 1 / 0;", "inf\n"},
		{"print -1 / 0;", "-inf\n"},
		{"print 0 / 0;", "NaN\n"},
		{"print 1000000;", "1000000\n"},
		{"print 0.1 + 0.2;", "0.30000000000000004\n"},
		{"print true;", "true\n"},
		{"print !true;", "false\n"},
		{"print nil;", "nil\n"},
		{"print \"raw \\n text\";", "raw \\n text\n"},
		{"print \"a\" + \"b\"; print \"c\";", "ab\nc\n"},
		{"1 + 2; print 3;", "3\n"},
		{"", ""},
	}

	for _, c := range cases {
		prog, err := parseSource(t, c.data)
		require.NoError(t, err, c.data)

		var out bytes.Buffer
		require.NoError(t, NewInterpreter(&out).Interpret(prog), c.data)
		assert.Equal(t, c.expect, out.String(), c.data)
	}
}

func TestInterpretStopsAtFirstError(t *testing.T) {
	prog, err := parseSource(t, "print 1; print -\"x\"; print 2;")
	require.NoError(t, err)

	var out bytes.Buffer
	err = NewInterpreter(&out).Interpret(prog)

	var runtimeErr *RuntimeError
	require.True(t, errors.As(err, &runtimeErr))
	assert.Equal(t, "1\n", out.String())
}

func TestExecuteVariableDecl(t *testing.T) {
	prog, err := parseSource(t, "var age = 26; var name = \"a\" + \"b\"; var none; var age = 27;")
	require.NoError(t, err)

	globals := NewGlobals()
	var out bytes.Buffer
	require.NoError(t, NewInterpreter(&out, WithGlobals(globals)).Interpret(prog))
	assert.Empty(t, out.String())

	v, ok := globals.Get("age")
	require.True(t, ok)
	assert.Equal(t, NumberValue(27), v)

	v, ok = globals.Get("name")
	require.True(t, ok)
	assert.Equal(t, StringValue("ab"), v)

	v, ok = globals.Get("none")
	require.True(t, ok)
	assert.Equal(t, NilValue{}, v)

	_, ok = globals.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 3, globals.Len())
}

func TestExecuteVariableDeclInitializerError(t *testing.T) {
	prog, err := parseSource(t, "var x = -\"a\";")
	require.NoError(t, err)

	i := NewInterpreter(&bytes.Buffer{})
	err = i.Interpret(prog)

	var runtimeErr *RuntimeError
	require.True(t, errors.As(err, &runtimeErr))

	_, ok := i.Globals().Get("x")
	assert.False(t, ok)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "3", NumberValue(3).String())
	assert.Equal(t, "-3.5", NumberValue(-3.5).String())
	assert.Equal(t, "raw", StringValue("raw").String())
	assert.Equal(t, "false", BoolValue(false).String())
	assert.Equal(t, "nil", NilValue{}.String())
}

var benchValue Value

func benchmarkEvaluate(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		toks, err := NewLexer(test.GetRandomArithmetic(size)).Run()
		if err != nil {
			b.Fatal(err)
		}

		expr, err := NewParser(toks).ParseExpression()
		if err != nil {
			b.Fatal(err)
		}

		i := NewInterpreter(nil)
		b.StartTimer()

		benchValue, err = i.Evaluate(expr)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluate100(b *testing.B) {
	benchmarkEvaluate(100, b)
}

func BenchmarkEvaluate1000(b *testing.B) {
	benchmarkEvaluate(1000, b)
}
