package lox

import "fmt"

// Checker resolves the type of every expression ahead of evaluation. There
// are no identifiers in expressions, so the dynamic type of each node is known
// statically and every operator misuse the evaluator would raise can be
// reported up front, all of them in one pass.
type Checker struct {
	errors []CompileError
}

func NewChecker() *Checker {
	return &Checker{}
}

func (c *Checker) Check(prog *Program) []CompileError {
	c.errors = nil

	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ExprStmt:
			c.resolve(s.Expr)
		case *PrintStmt:
			c.resolve(s.Expr)
		case *VariableDecl:
			c.resolve(s.Value)
		}
	}

	return c.errors
}

// Resolve returns the type of a single expression. Errors found on the way
// are available from Errors.
func (c *Checker) Resolve(expr Expr) Type {
	c.errors = nil
	return c.resolve(expr)
}

func (c *Checker) Errors() []CompileError {
	return c.errors
}

func (c *Checker) resolve(expr Expr) Type {
	switch e := expr.(type) {
	case *LiteralExpr:
		switch e.Typ {
		case LiteralNumber:
			return TypeNumber
		case LiteralString:
			return TypeString
		case LiteralBool:
			return TypeBool
		default:
			return TypeNil
		}
	case *GroupingExpr:
		return c.resolve(e.Expr)
	case *UnaryExpr:
		t := c.resolve(e.Operand)
		if isErrorType(t) {
			// Error already logged by the type resolution
			return t
		}

		if e.Operation == UnaryNot {
			return TypeBool
		}

		if !t.Equals(TypeNumber) {
			c.addError(&UndefinedUnaryError{Loc: e.Loc, Type: t, Op: e.Operation})
			return &TypeErr{TypeErrBadOp}
		}

		return TypeNumber
	case *BinaryExpr:
		t1 := c.resolve(e.Op1)
		t2 := c.resolve(e.Op2)

		if isErrorType(t1) {
			return t1
		}

		if isErrorType(t2) {
			return t2
		}

		result, ok := binaryResult(e.Operation, t1, t2)
		if !ok {
			c.addError(&UndefinedOperationError{Loc: e.Loc, Type1: t1, Type2: t2, Op: e.Operation})
			return &TypeErr{TypeErrBadOp}
		}

		return result
	}

	return &TypeErr{TypeErrUnknown}
}

func binaryResult(op BinaryOp, t1, t2 Type) (Type, bool) {
	switch op {
	case BinaryEqual, BinaryNotEqual:
		return TypeBool, true
	case BinaryAddition:
		if t1.Equals(TypeString) && t2.Equals(TypeString) {
			return TypeString, true
		}
	}

	if !t1.Equals(TypeNumber) || !t2.Equals(TypeNumber) {
		return nil, false
	}

	switch op {
	case BinaryLess, BinaryLessEqual, BinaryGreater, BinaryGreaterEqual:
		return TypeBool, true
	default:
		return TypeNumber, true
	}
}

func (c *Checker) addError(err CompileError) {
	c.errors = append(c.errors, err)
}

func isErrorType(t Type) bool {
	_, isErr := t.(*TypeErr)
	return isErr
}

type Type interface {
	String() string
	Equals(t2 Type) bool
}

type TypeErr struct {
	Reason string
}

const (
	TypeErrBadOp   = "bad op"
	TypeErrUnknown = "unknown"
)

func (t *TypeErr) String() string {
	return "~error:" + t.Reason
}

func (t *TypeErr) Equals(_ Type) bool {
	return false
}

type BasicType struct {
	Typ string
}

var (
	TypeNumber = &BasicType{"number"}
	TypeString = &BasicType{"string"}
	TypeBool   = &BasicType{"bool"}
	TypeNil    = &BasicType{"nil"}
)

func (t *BasicType) String() string {
	return t.Typ
}

func (t *BasicType) Equals(t2 Type) bool {
	if typ, ok := t2.(*BasicType); ok {
		return t.Typ == typ.Typ
	}

	return false
}

type CompileError interface {
	fmt.Stringer
	GetLocation() Location
}

type UndefinedOperationError struct {
	Loc   Location
	Type1 Type
	Type2 Type
	Op    BinaryOp
}

func (e *UndefinedOperationError) String() string {
	return fmt.Sprintf("%s undefined operation: '%s' %s '%s'", e.Loc, e.Type1, e.Op, e.Type2)
}

func (e *UndefinedOperationError) GetLocation() Location {
	return e.Loc
}

type UndefinedUnaryError struct {
	Loc  Location
	Type Type
	Op   UnaryOp
}

func (e *UndefinedUnaryError) String() string {
	return fmt.Sprintf("%s undefined operation: '%s' has no operator '%s'", e.Loc, e.Type, e.Op)
}

func (e *UndefinedUnaryError) GetLocation() Location {
	return e.Loc
}
