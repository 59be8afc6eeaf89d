package lox

import (
	"math"
	"strconv"
)

// Value is a runtime value. The four implementations are comparable, so ==
// on two Values is the language's structural equality.
type Value interface {
	String() string
	valueNode()
}

type NumberValue float64

type StringValue string

type BoolValue bool

type NilValue struct{}

func (v NumberValue) String() string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v StringValue) String() string { return string(v) }

func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }

func (NilValue) String() string { return "nil" }

func (NumberValue) valueNode() {}
func (StringValue) valueNode() {}
func (BoolValue) valueNode()   {}
func (NilValue) valueNode()    {}

// IsTruthy reports false for nil and false, true for everything else.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return bool(val)
	default:
		return true
	}
}

// Globals is the flat binding table variable declarations write to.
type Globals struct {
	vals map[string]Value
}

func NewGlobals() *Globals {
	return &Globals{
		vals: make(map[string]Value),
	}
}

func (g *Globals) Define(name string, val Value) {
	g.vals[name] = val
}

func (g *Globals) Get(name string) (Value, bool) {
	val, ok := g.vals[name]
	return val, ok
}

func (g *Globals) Len() int {
	return len(g.vals)
}
