package lox

// Program is the root of a parsed source file.
type Program struct {
	Statements []Stmt
}

// Expr is implemented only by the expression nodes in this file.
type Expr interface {
	GetLocation() Location
	exprNode()
}

// Stmt is implemented only by the statement nodes in this file.
type Stmt interface {
	GetLocation() Location
	stmtNode()
}

type ExprStmt struct {
	Loc  Location
	Expr Expr
}

type PrintStmt struct {
	Loc  Location
	Expr Expr
}

type VariableDecl struct {
	Loc   Location
	Name  string
	Value Expr
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryLess           BinaryOp = "<"
	BinaryLessEqual      BinaryOp = "<="
	BinaryGreater        BinaryOp = ">"
	BinaryGreaterEqual   BinaryOp = ">="
	BinaryEqual          BinaryOp = "=="
	BinaryNotEqual       BinaryOp = "!="
)

var binaryOps = map[TokenType]BinaryOp{
	TokenPlus:         BinaryAddition,
	TokenMinus:        BinarySubtraction,
	TokenMulti:        BinaryMultiplication,
	TokenDiv:          BinaryDivision,
	TokenLess:         BinaryLess,
	TokenLessEqual:    BinaryLessEqual,
	TokenGreater:      BinaryGreater,
	TokenGreaterEqual: BinaryGreaterEqual,
	TokenEqual:        BinaryEqual,
	TokenBangEqual:    BinaryNotEqual,
}

type BinaryExpr struct {
	Loc       Location
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

type UnaryOp string

const (
	UnaryNegative UnaryOp = "-"
	UnaryNot      UnaryOp = "!"
)

type UnaryExpr struct {
	Loc       Location
	Operation UnaryOp
	Operand   Expr
}

// GroupingExpr is a parenthesised expression. It evaluates to its inner
// expression and only exists so the tree mirrors the source.
type GroupingExpr struct {
	Loc  Location
	Expr Expr
}

type LiteralType int

const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNil
)

type LiteralExpr struct {
	Loc    Location
	Typ    LiteralType
	Value  string
	Number float64
	Bool   bool
}

func (e *ExprStmt) GetLocation() Location     { return e.Loc }
func (e *PrintStmt) GetLocation() Location    { return e.Loc }
func (e *VariableDecl) GetLocation() Location { return e.Loc }
func (e *BinaryExpr) GetLocation() Location   { return e.Loc }
func (e *UnaryExpr) GetLocation() Location    { return e.Loc }
func (e *GroupingExpr) GetLocation() Location { return e.Loc }
func (e *LiteralExpr) GetLocation() Location  { return e.Loc }

func (*ExprStmt) stmtNode()     {}
func (*PrintStmt) stmtNode()    {}
func (*VariableDecl) stmtNode() {}

func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*GroupingExpr) exprNode() {}
func (*LiteralExpr) exprNode()  {}
