package lox

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	EOF rune = 0

	TokenEOF TokenType = iota
	TokenNumber
	TokenString
	TokenIdentifier

	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
	TokenComma
	TokenDot
	TokenMinus
	TokenPlus
	TokenSemicolon
	TokenDiv
	TokenMulti

	TokenBang
	TokenBangEqual
	TokenAssign
	TokenEqual
	TokenGreater
	TokenGreaterEqual
	TokenLess
	TokenLessEqual

	TokenAnd
	TokenClass
	TokenElse
	TokenFalse
	TokenFun
	TokenFor
	TokenIf
	TokenNil
	TokenOr
	TokenPrint
	TokenReturn
	TokenSuper
	TokenThis
	TokenTrue
	TokenVar
	TokenWhile
)

var keywordTable = map[string]TokenType{
	"and":    TokenAnd,
	"class":  TokenClass,
	"else":   TokenElse,
	"false":  TokenFalse,
	"fun":    TokenFun,
	"for":    TokenFor,
	"if":     TokenIf,
	"nil":    TokenNil,
	"or":     TokenOr,
	"print":  TokenPrint,
	"return": TokenReturn,
	"super":  TokenSuper,
	"this":   TokenThis,
	"true":   TokenTrue,
	"var":    TokenVar,
	"while":  TokenWhile,
}

var operatorTable = map[string]TokenType{
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	"{":  TokenOpenCurly,
	"}":  TokenCloseCurly,
	",":  TokenComma,
	".":  TokenDot,
	"-":  TokenMinus,
	"+":  TokenPlus,
	";":  TokenSemicolon,
	"*":  TokenMulti,
	"/":  TokenDiv,
	"!":  TokenBang,
	"!=": TokenBangEqual,
	"=":  TokenAssign,
	"==": TokenEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
}

var tokenNames = map[TokenType]string{
	TokenEOF:        "end of input",
	TokenNumber:     "number",
	TokenString:     "string",
	TokenIdentifier: "identifier",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	for lexeme, typ := range operatorTable {
		if typ == t {
			return "'" + lexeme + "'"
		}
	}

	for word, typ := range keywordTable {
		if typ == t {
			return "'" + word + "'"
		}
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

// Location is the line and column a lexeme starts at. Both are 1-based and
// columns count code points, not bytes.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

type Token struct {
	Typ    TokenType
	Value  string
	Number float64
	Loc    Location
}

func (t Token) String() string {
	switch t.Typ {
	case TokenEOF:
		return "end of input"
	case TokenString:
		return strconv.Quote(t.Value)
	default:
		return "'" + t.Value + "'"
	}
}

type Lexer struct {
	src    []rune
	pos    int
	line   int
	col    int
	start  Location
	tokens []Token
	err    error
}

func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  []rune(src),
		line: 1,
		col:  1,
		err:  validateEncoding(src),
	}
}

// validateEncoding reports the first byte of src that is not valid UTF-8.
func validateEncoding(src string) error {
	loc := Location{Line: 1, Column: 1}
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size == 1 {
			return &ScanError{Loc: loc, Msg: "invalid UTF-8 encoding"}
		}

		if r == '\n' {
			loc.Line++
			loc.Column = 1
		} else {
			loc.Column++
		}
		i += size
	}

	return nil
}

func NewLexerFromReader(reader io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	return NewLexer(string(data)), nil
}

// Run scans the whole source. On failure no tokens are returned.
func (l *Lexer) Run() ([]Token, error) {
	if l.err != nil {
		return nil, l.err
	}

	for state := defaultState; state != nil; {
		state = state(l)
	}

	if l.err != nil {
		return nil, l.err
	}

	return l.tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.mark()

		switch r := l.peek(); {
		case r == EOF && l.atEnd():
			return l.emmitValue(TokenEOF, "")
		case r == ' ' || r == '\r' || r == '\t' || r == '\n':
			l.next()
			continue
		case isDigit(r):
			return numberState
		case r == '"':
			return stringState
		case isAlpha(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for isDigit(l.peek()) {
		num.WriteRune(l.next())
	}

	// A trailing dot is only part of the number when a digit follows it
	if l.peek() == '.' && isDigit(l.peekNext()) {
		num.WriteRune(l.next())
		for isDigit(l.peek()) {
			num.WriteRune(l.next())
		}
	}

	text := num.String()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return l.errorf("invalid number '%s'", text)
	}

	l.tokens = append(l.tokens, Token{
		Typ:    TokenNumber,
		Value:  text,
		Number: v,
		Loc:    l.start,
	})

	return defaultState
}

func stringState(l *Lexer) stateFunc {
	l.next() // Skip the leading double-quote

	var str strings.Builder
	for {
		if l.atEnd() {
			return l.errorf("unterminated string")
		}

		r := l.next()
		if r == '"' {
			break
		}

		str.WriteRune(r)
	}

	return l.emmitValue(TokenString, str.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); isAlpha(r) || isDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emmitValue(t, id.String())
	}

	return l.emmitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	switch r {
	case '!', '=', '<', '>':
		if l.peek() == '=' {
			l.next()
			op := string(r) + "="
			return l.emmitValue(operatorTable[op], op)
		}
	case '/':
		if l.peek() == '/' {
			return lineCommentState
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emmitValue(tok, string(r))
	}

	return l.errorf("unexpected character '%c'", r)
}

func lineCommentState(l *Lexer) stateFunc {
	for r := l.peek(); r != '\n' && !l.atEnd(); r = l.peek() {
		l.next()
	}

	return defaultState
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.err = &ScanError{
		Loc: l.start,
		Msg: fmt.Sprintf(format, args...),
	}

	return nil
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	l.tokens = append(l.tokens, Token{
		Typ:   t,
		Value: val,
		Loc:   l.start,
	})

	if t == TokenEOF {
		return nil
	}

	return defaultState
}

// mark records the current position as the start of the next lexeme.
func (l *Lexer) mark() {
	l.start = Location{Line: l.line, Column: l.col}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return EOF
	}

	return l.src[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.src) {
		return EOF
	}

	return l.src[l.pos+1]
}

func (l *Lexer) next() rune {
	if l.atEnd() {
		return EOF
	}

	r := l.src[l.pos]
	l.pos++

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isAlpha(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}
