package test

import (
	"math/rand"
	"strings"
)

const validTokens = "var;age;=;26;print;(;);{;};,;.;-;+;*;/;!;!=;==;<;<=;>;>=;\"this is a string\";\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\"\";123;3.25;true;false;nil;while;_under_score;//comment\n;\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

const validExpressions = "1;2.5;(3 - 1);-4"

// GetRandomArithmetic returns a numeric expression of size operands.
func GetRandomArithmetic(size int) string {
	ops := []string{"+", "-", "*", "/"}
	operands := strings.Split(validExpressions, ";")

	var b strings.Builder
	b.WriteString("1")
	for i := 1; i < size; i++ {
		b.WriteString(" ")
		b.WriteString(ops[rand.Intn(len(ops))])
		b.WriteString(" ")
		b.WriteString(operands[rand.Intn(len(operands))])
	}

	return b.String()
}
