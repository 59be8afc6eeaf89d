package lox

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// irValue is a lowered expression. Numbers and booleans live in registers or
// constants; strings and nil never reach the IR as values and are folded here.
type irValue struct {
	typ Type
	v   value.Value
	str string
}

// valueLookup holds var bindings. Expressions cannot name a variable, so
// nothing reads it back during lowering.
type valueLookup struct {
	vals map[string]irValue
}

func newValueLookup() *valueLookup {
	return &valueLookup{
		vals: make(map[string]irValue),
	}
}

func (l *valueLookup) get(id string) (irValue, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *valueLookup) set(id string, val irValue) {
	l.vals[id] = val
}

type LLVMIRBuilder struct {
	mod     *ir.Module
	block   *ir.Block
	values  *valueLookup
	printf  *ir.Func
	strings map[string]constant.Constant
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:     ir.NewModule(),
		values:  newValueLookup(),
		strings: make(map[string]constant.Constant),
	}

	defineBuiltins(builder)
	return builder
}

func (b *LLVMIRBuilder) statement(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := b.expression(s.Expr)
		return err
	case *PrintStmt:
		v, err := b.expression(s.Expr)
		if err != nil {
			return err
		}

		b.print(v)
		return nil
	case *VariableDecl:
		v, err := b.expression(s.Value)
		if err != nil {
			return err
		}

		b.values.set(s.Name, v)
		return nil
	default:
		return fmt.Errorf("unknown statement %T", stmt)
	}
}

func (b *LLVMIRBuilder) print(v irValue) {
	switch {
	case v.typ.Equals(TypeNumber):
		b.block.NewCall(b.printf, b.stringConstant(printNumberFormat), v.v)
	case v.typ.Equals(TypeBool):
		text := b.block.NewSelect(v.v, b.stringConstant("true"), b.stringConstant("false"))
		b.block.NewCall(b.printf, b.stringConstant(printStringFormat), text)
	case v.typ.Equals(TypeString):
		b.block.NewCall(b.printf, b.stringConstant(printStringFormat), b.stringConstant(v.str))
	default:
		b.block.NewCall(b.printf, b.stringConstant(printStringFormat), b.stringConstant("nil"))
	}
}

// stringConstant returns an i8* to a NUL terminated global holding s,
// defining the global the first time s is seen.
func (b *LLVMIRBuilder) stringConstant(s string) constant.Constant {
	if ptr, ok := b.strings[s]; ok {
		return ptr
	}

	data := constant.NewCharArrayFromString(s + "\x00")
	glob := b.mod.NewGlobalDef(fmt.Sprintf(".str.%d", len(b.strings)), data)

	zero := constant.NewInt(types.I32, 0)
	ptr := constant.NewGetElementPtr(types.NewArray(uint64(len(s)+1), types.I8), glob, zero, zero)
	b.strings[s] = ptr

	return ptr
}

func (b *LLVMIRBuilder) expression(expr Expr) (irValue, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return b.loadLiteral(e), nil
	case *GroupingExpr:
		return b.expression(e.Expr)
	case *UnaryExpr:
		return b.unaryExpression(e)
	case *BinaryExpr:
		return b.binaryExpression(e)
	default:
		return irValue{}, fmt.Errorf("unknown expression %T", expr)
	}
}

func (b *LLVMIRBuilder) loadLiteral(e *LiteralExpr) irValue {
	switch e.Typ {
	case LiteralNumber:
		return irValue{typ: TypeNumber, v: constant.NewFloat(types.Double, e.Number)}
	case LiteralString:
		return irValue{typ: TypeString, str: e.Value}
	case LiteralBool:
		return boolConstant(e.Bool)
	default:
		return irValue{typ: TypeNil}
	}
}

func boolConstant(x bool) irValue {
	return irValue{typ: TypeBool, v: constant.NewBool(x)}
}

func (b *LLVMIRBuilder) unaryExpression(e *UnaryExpr) (irValue, error) {
	v, err := b.expression(e.Operand)
	if err != nil {
		return irValue{}, err
	}

	switch e.Operation {
	case UnaryNegative:
		if !v.typ.Equals(TypeNumber) {
			return irValue{}, fmt.Errorf("%s cannot negate %s", e.Loc, v.typ)
		}

		return irValue{typ: TypeNumber, v: b.block.NewFNeg(v.v)}, nil
	case UnaryNot:
		switch {
		case v.typ.Equals(TypeBool):
			return irValue{typ: TypeBool, v: b.block.NewXor(v.v, constant.NewBool(true))}, nil
		case v.typ.Equals(TypeNil):
			return boolConstant(true), nil
		default:
			return boolConstant(false), nil
		}
	default:
		return irValue{}, fmt.Errorf("unexpected unary op: %s", e.Operation)
	}
}

var floatPredicates = map[BinaryOp]enum.FPred{
	BinaryLess:         enum.FPredOLT,
	BinaryLessEqual:    enum.FPredOLE,
	BinaryGreater:      enum.FPredOGT,
	BinaryGreaterEqual: enum.FPredOGE,
	BinaryEqual:        enum.FPredOEQ,
	BinaryNotEqual:     enum.FPredUNE,
}

func (b *LLVMIRBuilder) binaryExpression(e *BinaryExpr) (irValue, error) {
	v1, err := b.expression(e.Op1)
	if err != nil {
		return irValue{}, err
	}

	v2, err := b.expression(e.Op2)
	if err != nil {
		return irValue{}, err
	}

	if e.Operation == BinaryEqual || e.Operation == BinaryNotEqual {
		return b.equality(e.Operation, v1, v2), nil
	}

	if e.Operation == BinaryAddition && v1.typ.Equals(TypeString) && v2.typ.Equals(TypeString) {
		return irValue{typ: TypeString, str: v1.str + v2.str}, nil
	}

	if !v1.typ.Equals(TypeNumber) || !v2.typ.Equals(TypeNumber) {
		return irValue{}, fmt.Errorf("%s undefined operation: '%s' %s '%s'", e.Loc, v1.typ, e.Operation, v2.typ)
	}

	switch e.Operation {
	case BinaryAddition:
		return irValue{typ: TypeNumber, v: b.block.NewFAdd(v1.v, v2.v)}, nil
	case BinarySubtraction:
		return irValue{typ: TypeNumber, v: b.block.NewFSub(v1.v, v2.v)}, nil
	case BinaryMultiplication:
		return irValue{typ: TypeNumber, v: b.block.NewFMul(v1.v, v2.v)}, nil
	case BinaryDivision:
		return irValue{typ: TypeNumber, v: b.block.NewFDiv(v1.v, v2.v)}, nil
	}

	pred, ok := floatPredicates[e.Operation]
	if !ok {
		return irValue{}, fmt.Errorf("unexpected binary op: %s", e.Operation)
	}

	return irValue{typ: TypeBool, v: b.block.NewFCmp(pred, v1.v, v2.v)}, nil
}

func (b *LLVMIRBuilder) equality(op BinaryOp, v1, v2 irValue) irValue {
	equal := op == BinaryEqual

	if !v1.typ.Equals(v2.typ) {
		return boolConstant(!equal)
	}

	switch {
	case v1.typ.Equals(TypeNumber):
		return irValue{typ: TypeBool, v: b.block.NewFCmp(floatPredicates[op], v1.v, v2.v)}
	case v1.typ.Equals(TypeBool):
		pred := enum.IPredEQ
		if !equal {
			pred = enum.IPredNE
		}

		return irValue{typ: TypeBool, v: b.block.NewICmp(pred, v1.v, v2.v)}
	case v1.typ.Equals(TypeString):
		return boolConstant((v1.str == v2.str) == equal)
	default:
		return boolConstant(equal)
	}
}

type LLVMGenerator struct {
	prog *Program
}

func NewLLVMGenerator(prog *Program) *LLVMGenerator {
	return &LLVMGenerator{
		prog: prog,
	}
}

// Do type checks the program and lowers it into the body of i32 @main().
func (g LLVMGenerator) Do() (*ir.Module, error) {
	if errs := NewChecker().Check(g.prog); len(errs) != 0 {
		return nil, &CheckError{Errors: errs}
	}

	builder := NewLLVMIRBuilder()
	main := builder.mod.NewFunc("main", types.I32)
	builder.block = main.NewBlock("")

	for _, stmt := range g.prog.Statements {
		if err := builder.statement(stmt); err != nil {
			return nil, err
		}
	}

	builder.block.NewRet(constant.NewInt(types.I32, 0))

	return builder.mod, nil
}
