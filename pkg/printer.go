package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// PrintExpr renders expr as a parenthesised prefix form, e.g. (+ 1 (* 2 3)).
func PrintExpr(expr Expr) string {
	var b strings.Builder
	writeExpr(&b, expr)

	return b.String()
}

// PrintStatement renders stmt the way PrintExpr renders expressions.
func PrintStatement(stmt Stmt) string {
	switch s := stmt.(type) {
	case *ExprStmt:
		return "(expr " + PrintExpr(s.Expr) + ")"
	case *PrintStmt:
		return "(print " + PrintExpr(s.Expr) + ")"
	case *VariableDecl:
		return "(var " + s.Name + " " + PrintExpr(s.Value) + ")"
	default:
		return fmt.Sprintf("(unknown %T)", stmt)
	}
}

func writeExpr(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *LiteralExpr:
		switch e.Typ {
		case LiteralNumber:
			b.WriteString(NumberValue(e.Number).String())
		case LiteralString:
			b.WriteString(strconv.Quote(e.Value))
		case LiteralBool:
			b.WriteString(strconv.FormatBool(e.Bool))
		default:
			b.WriteString("nil")
		}
	case *GroupingExpr:
		b.WriteString("(group ")
		writeExpr(b, e.Expr)
		b.WriteString(")")
	case *UnaryExpr:
		b.WriteString("(" + string(e.Operation) + " ")
		writeExpr(b, e.Operand)
		b.WriteString(")")
	case *BinaryExpr:
		b.WriteString("(" + string(e.Operation) + " ")
		writeExpr(b, e.Op1)
		b.WriteString(" ")
		writeExpr(b, e.Op2)
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "(unknown %T)", expr)
	}
}
