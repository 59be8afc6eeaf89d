package lox

import (
	"fmt"
	"io"
	"log/slog"
)

type Interpreter struct {
	out     io.Writer
	log     *slog.Logger
	globals *Globals
}

type Option func(*Interpreter)

func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.log = logger
		}
	}
}

func WithGlobals(globals *Globals) Option {
	return func(i *Interpreter) {
		if globals != nil {
			i.globals = globals
		}
	}
}

// NewInterpreter returns an interpreter that prints to out.
func NewInterpreter(out io.Writer, opts ...Option) *Interpreter {
	i := &Interpreter{
		out:     out,
		log:     discardLogger(),
		globals: NewGlobals(),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

func (i *Interpreter) Globals() *Globals {
	return i.globals
}

// Interpret executes statements in order, stopping at the first error.
func (i *Interpreter) Interpret(prog *Program) error {
	for _, stmt := range prog.Statements {
		if err := i.Execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) Execute(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := i.Evaluate(s.Expr)
		return err
	case *PrintStmt:
		v, err := i.Evaluate(s.Expr)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(i.out, v.String()); err != nil {
			return fmt.Errorf("print: %w", err)
		}

		return nil
	case *VariableDecl:
		v, err := i.Evaluate(s.Value)
		if err != nil {
			return err
		}

		i.log.Debug("define", "name", s.Name, "value", v.String(), "line", s.Loc.Line)
		i.globals.Define(s.Name, v)

		return nil
	default:
		return fmt.Errorf("unknown statement %T", stmt)
	}
}

// Evaluate computes the value of expr. It has no side effects.
func (i *Interpreter) Evaluate(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return literalValue(e), nil
	case *GroupingExpr:
		return i.Evaluate(e.Expr)
	case *UnaryExpr:
		return i.unaryExpression(e)
	case *BinaryExpr:
		return i.binaryExpression(e)
	default:
		return nil, fmt.Errorf("unknown expression %T", expr)
	}
}

func literalValue(e *LiteralExpr) Value {
	switch e.Typ {
	case LiteralNumber:
		return NumberValue(e.Number)
	case LiteralString:
		return StringValue(e.Value)
	case LiteralBool:
		return BoolValue(e.Bool)
	default:
		return NilValue{}
	}
}

func (i *Interpreter) unaryExpression(e *UnaryExpr) (Value, error) {
	v, err := i.Evaluate(e.Operand)
	if err != nil {
		return nil, err
	}

	switch e.Operation {
	case UnaryNegative:
		n, ok := v.(NumberValue)
		if !ok {
			return nil, &RuntimeError{Loc: e.Loc, Op: string(e.Operation), Msg: "can only negate a number"}
		}

		return -n, nil
	case UnaryNot:
		return BoolValue(!IsTruthy(v)), nil
	default:
		return nil, fmt.Errorf("unexpected unary op: %s", e.Operation)
	}
}

func (i *Interpreter) binaryExpression(e *BinaryExpr) (Value, error) {
	v1, err := i.Evaluate(e.Op1)
	if err != nil {
		return nil, err
	}

	v2, err := i.Evaluate(e.Op2)
	if err != nil {
		return nil, err
	}

	switch e.Operation {
	case BinaryEqual:
		return BoolValue(v1 == v2), nil
	case BinaryNotEqual:
		return BoolValue(v1 != v2), nil
	case BinaryAddition:
		if s1, ok := v1.(StringValue); ok {
			if s2, ok := v2.(StringValue); ok {
				return s1 + s2, nil
			}
		}

		n1, n2, ok := numberOperands(v1, v2)
		if !ok {
			return nil, &RuntimeError{Loc: e.Loc, Op: string(e.Operation), Msg: "operands must be two numbers or two strings"}
		}

		return n1 + n2, nil
	}

	n1, n2, ok := numberOperands(v1, v2)
	if !ok {
		return nil, &RuntimeError{Loc: e.Loc, Op: string(e.Operation), Msg: "operands must be numbers"}
	}

	switch e.Operation {
	case BinarySubtraction:
		return n1 - n2, nil
	case BinaryMultiplication:
		return n1 * n2, nil
	case BinaryDivision:
		return n1 / n2, nil
	case BinaryLess:
		return BoolValue(n1 < n2), nil
	case BinaryLessEqual:
		return BoolValue(n1 <= n2), nil
	case BinaryGreater:
		return BoolValue(n1 > n2), nil
	case BinaryGreaterEqual:
		return BoolValue(n1 >= n2), nil
	default:
		return nil, fmt.Errorf("unexpected binary op: %s", e.Operation)
	}
}

func numberOperands(v1, v2 Value) (NumberValue, NumberValue, bool) {
	n1, ok1 := v1.(NumberValue)
	n2, ok2 := v2.(NumberValue)

	return n1, n2, ok1 && ok2
}
