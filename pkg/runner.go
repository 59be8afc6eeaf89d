package lox

import (
	"io"
	"log/slog"
	"time"
)

// Runner drives source text through the pipeline stages.
type Runner struct {
	out         io.Writer
	log         *slog.Logger
	interpreter *Interpreter
}

// NewRunner returns a runner printing to out. A nil logger discards logs.
func NewRunner(out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = discardLogger()
	}

	return &Runner{
		out:         out,
		log:         logger,
		interpreter: NewInterpreter(out, WithLogger(logger)),
	}
}

// Interpreter is shared by every Run call, so declarations made by one run
// are visible in the globals of the next.
func (r *Runner) Interpreter() *Interpreter {
	return r.interpreter
}

func (r *Runner) Tokens(src string) ([]Token, error) {
	start := time.Now()

	toks, err := NewLexer(src).Run()
	if err != nil {
		r.log.Debug("scan failed", "error", err)
		return nil, err
	}

	r.log.Debug("scanned", "tokens", len(toks), "elapsed", time.Since(start))
	return toks, nil
}

func (r *Runner) Parse(src string) (*Program, error) {
	toks, err := r.Tokens(src)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	prog, err := NewParser(toks).Run()
	if err != nil {
		r.log.Debug("parse failed", "error", err)
		return nil, err
	}

	r.log.Debug("parsed", "statements", len(prog.Statements), "elapsed", time.Since(start))
	return prog, nil
}

func (r *Runner) Run(src string) error {
	prog, err := r.Parse(src)
	if err != nil {
		return err
	}

	start := time.Now()

	if err := r.interpreter.Interpret(prog); err != nil {
		r.log.Debug("runtime failure", "error", err)
		return err
	}

	r.log.Debug("interpreted", "elapsed", time.Since(start))
	return nil
}

func (r *Runner) Check(src string) error {
	prog, err := r.Parse(src)
	if err != nil {
		return err
	}

	if errs := NewChecker().Check(prog); len(errs) != 0 {
		r.log.Debug("check failed", "errors", len(errs))
		return &CheckError{Errors: errs}
	}

	return nil
}

// Emit returns the textual LLVM IR for src.
func (r *Runner) Emit(src string) (string, error) {
	prog, err := r.Parse(src)
	if err != nil {
		return "", err
	}

	start := time.Now()

	mod, err := NewLLVMGenerator(prog).Do()
	if err != nil {
		return "", err
	}

	r.log.Debug("emitted", "globals", len(mod.Globals), "elapsed", time.Since(start))
	return mod.String(), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
