package lox

type Parser struct {
	tokens []Token
	pos    int
}

// NewParser expects an EOF terminated token slice, as returned by Lexer.Run.
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Typ != TokenEOF {
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Typ: TokenEOF})
	}

	return &Parser{
		tokens: tokens,
	}
}

// Run parses declarations until EOF. The first error ends parsing.
func (p *Parser) Run() (*Program, error) {
	prog := &Program{}

	for !p.check(TokenEOF) {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}

		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

// ParseExpression parses a single expression that must span all the tokens.
func (p *Parser) ParseExpression() (Expr, error) {
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if !p.check(TokenEOF) {
		return nil, p.errorAt("expected end of input")
	}

	return expr, nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Typ != TokenEOF {
		p.pos++
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

// match consumes the next token if it is one of typs.
func (p *Parser) match(typs ...TokenType) (Token, bool) {
	for _, typ := range typs {
		if p.check(typ) {
			return p.next(), true
		}
	}

	return Token{}, false
}

func (p *Parser) expect(typ TokenType, msg string) (Token, error) {
	if tok, ok := p.match(typ); ok {
		return tok, nil
	}

	return Token{}, p.errorAt(msg)
}

func (p *Parser) errorAt(expected string) error {
	return &ParseError{
		Tok:      p.peek(),
		Expected: expected,
	}
}

func (p *Parser) declaration() (Stmt, error) {
	if p.check(TokenVar) {
		return p.varDecl()
	}

	return p.statement()
}

func (p *Parser) varDecl() (Stmt, error) {
	start := p.next().Loc // var keyword

	name, err := p.expect(TokenIdentifier, "variable declarations require an identifier")
	if err != nil {
		return nil, err
	}

	var value Expr = &LiteralExpr{Loc: name.Loc, Typ: LiteralNil, Value: "nil"}
	if _, ok := p.match(TokenAssign); ok {
		if value, err = p.expr(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenSemicolon, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}

	return &VariableDecl{
		Loc:   start,
		Name:  name.Value,
		Value: value,
	}, nil
}

func (p *Parser) statement() (Stmt, error) {
	if tok, ok := p.match(TokenPrint); ok {
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenSemicolon, "expected ';' after value"); err != nil {
			return nil, err
		}

		return &PrintStmt{Loc: tok.Loc, Expr: expr}, nil
	}

	start := p.peek().Loc
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "expected ';' after expression"); err != nil {
		return nil, err
	}

	return &ExprStmt{Loc: start, Expr: expr}, nil
}

func (p *Parser) expr() (Expr, error) {
	return p.equalityExpr()
}

// binaryLevel parses one left-associative precedence level: operands come
// from operand and are folded left for as long as one of ops follows.
func (p *Parser) binaryLevel(operand func() (Expr, error), ops ...TokenType) (Expr, error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.match(ops...)
		if !ok {
			return lhs, nil
		}

		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Loc:       tok.Loc,
			Operation: binaryOps[tok.Typ],
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

func (p *Parser) equalityExpr() (Expr, error) {
	return p.binaryLevel(p.comparisonExpr, TokenBangEqual, TokenEqual)
}

func (p *Parser) comparisonExpr() (Expr, error) {
	return p.binaryLevel(p.additiveExpr, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *Parser) additiveExpr() (Expr, error) {
	return p.binaryLevel(p.multiplicativeExpr, TokenMinus, TokenPlus)
}

func (p *Parser) multiplicativeExpr() (Expr, error) {
	return p.binaryLevel(p.unaryExpr, TokenDiv, TokenMulti)
}

func (p *Parser) unaryExpr() (Expr, error) {
	tok, ok := p.match(TokenBang, TokenMinus)
	if !ok {
		return p.primary()
	}

	operand, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	op := UnaryNegative
	if tok.Typ == TokenBang {
		op = UnaryNot
	}

	return &UnaryExpr{
		Loc:       tok.Loc,
		Operation: op,
		Operand:   operand,
	}, nil
}

func (p *Parser) primary() (Expr, error) {
	if p.check(TokenOpenParentheses) {
		return p.parenthesisedExpression()
	}

	return p.literal()
}

func (p *Parser) parenthesisedExpression() (Expr, error) {
	open := p.next()

	inner, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses, "expected ')' after expression"); err != nil {
		return nil, err
	}

	return &GroupingExpr{Loc: open.Loc, Expr: inner}, nil
}

func (p *Parser) literal() (Expr, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenNumber:
		p.next()
		return &LiteralExpr{Loc: tok.Loc, Typ: LiteralNumber, Value: tok.Value, Number: tok.Number}, nil
	case TokenString:
		p.next()
		return &LiteralExpr{Loc: tok.Loc, Typ: LiteralString, Value: tok.Value}, nil
	case TokenTrue, TokenFalse:
		p.next()
		return &LiteralExpr{Loc: tok.Loc, Typ: LiteralBool, Value: tok.Value, Bool: tok.Typ == TokenTrue}, nil
	case TokenNil:
		p.next()
		return &LiteralExpr{Loc: tok.Loc, Typ: LiteralNil, Value: tok.Value}, nil
	default:
		return nil, p.errorAt("expected expression")
	}
}
