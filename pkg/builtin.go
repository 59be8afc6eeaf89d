package lox

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

const (
	printNumberFormat = "%.15g\n"
	printStringFormat = "%s\n"
)

func defineBuiltins(b *LLVMIRBuilder) {
	b.printf = builtinPrintf(b.mod)
}

// builtinPrintf declares the C printf the generated main calls for print.
func builtinPrintf(mod *ir.Module) *ir.Func {
	printf := mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	return printf
}
