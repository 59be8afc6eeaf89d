package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.lox.dev/internal/config"
	"go.lox.dev/internal/logs"
	"go.lox.dev/pkg"
)

const version = "lox 0.1.0"

// Exit codes follow sysexits.h.
const (
	exitOK       = 0
	exitUsage    = 1
	exitDataErr  = 65
	exitSoftware = 70
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("lox", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", config.DefaultPath, "path to the YAML config file")
	output := flags.String("o", "", "output file for emit (default stdout)")
	flags.Usage = func() { printUsage(stderr) }

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	args = flags.Args()

	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	level := new(slog.LevelVar)
	lvl, err := logs.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	level.Set(lvl)

	logger, closer, err := logs.New(stderr, level, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer closer.Close()

	if *output == "" {
		*output = cfg.Emit.Output
	}

	r := lox.NewRunner(stdout, logger)

	switch cmd, rest := args[0], args[1:]; cmd {
	case "--help", "-h", "help":
		printUsage(stdout)
		return exitOK
	case "version", "--version", "-V":
		fmt.Fprintln(stdout, version)
		return exitOK
	case "repl":
		return repl(r, cfg.Repl.Prompt, stdin, stdout, stderr)
	case "run":
		return withSource(rest, stderr, func(src string) int {
			return report(stderr, r.Run(src))
		})
	case "tokens":
		return withSource(rest, stderr, func(src string) int {
			toks, err := r.Tokens(src)
			if err != nil {
				return report(stderr, err)
			}
			for _, tok := range toks {
				fmt.Fprintf(stdout, "%s\t%s\n", tok.Loc, tok)
			}
			return exitOK
		})
	case "ast":
		return withSource(rest, stderr, func(src string) int {
			prog, err := r.Parse(src)
			if err != nil {
				return report(stderr, err)
			}
			for _, stmt := range prog.Statements {
				fmt.Fprintln(stdout, lox.PrintStatement(stmt))
			}
			return exitOK
		})
	case "check":
		return withSource(rest, stderr, func(src string) int {
			return report(stderr, r.Check(src))
		})
	case "emit":
		rest, err := parseCommand(cmd, rest, output, stderr)
		if err != nil {
			return exitUsage
		}
		return withSource(rest, stderr, func(src string) int {
			text, err := r.Emit(src)
			if err != nil {
				return report(stderr, err)
			}
			return writeOutput(*output, text, stdout, stderr)
		})
	default:
		return withSource(args, stderr, func(src string) int {
			return report(stderr, r.Run(src))
		})
	}
}

// parseCommand parses the flags of a subcommand, which may appear before or
// after its FILE argument, and returns the remaining positional arguments.
func parseCommand(name string, args []string, output *string, stderr io.Writer) ([]string, error) {
	flags := flag.NewFlagSet("lox "+name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(output, "o", *output, "output file for emit (default stdout)")
	flags.Usage = func() { printUsage(stderr) }

	var positional []string
	for {
		if err := flags.Parse(args); err != nil {
			return nil, err
		}
		args = flags.Args()
		if len(args) == 0 {
			return positional, nil
		}

		positional = append(positional, args[0])
		args = args[1:]
	}
}

func withSource(args []string, stderr io.Writer, fn func(src string) int) int {
	if len(args) != 1 {
		printUsage(stderr)
		return exitUsage
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "read %s: %v\n", args[0], err)
		return exitUsage
	}

	return fn(string(data))
}

func writeOutput(path, text string, stdout, stderr io.Writer) int {
	if path == "" {
		fmt.Fprint(stdout, text)
		return exitOK
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		fmt.Fprintf(stderr, "write %s: %v\n", path, err)
		return exitUsage
	}
	return exitOK
}

// report prints err and maps it to an exit code.
func report(stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(stderr, err)

	var (
		scanErr    *lox.ScanError
		parseErr   *lox.ParseError
		checkErr   *lox.CheckError
		runtimeErr *lox.RuntimeError
	)
	switch {
	case errors.As(err, &scanErr), errors.As(err, &parseErr), errors.As(err, &checkErr):
		return exitDataErr
	case errors.As(err, &runtimeErr):
		return exitSoftware
	default:
		return exitUsage
	}
}

func repl(r *lox.Runner, prompt string, stdin io.Reader, stdout, stderr io.Writer) int {
	scanner := bufio.NewScanner(stdin)

	for {
		fmt.Fprint(stdout, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			break
		}

		if err := r.Run(scanner.Text()); err != nil {
			fmt.Fprintln(stderr, err)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	return exitOK
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `usage: lox [-config FILE] [-o OUT] <command> [FILE] [-o OUT]

commands:
  run FILE      scan, parse and interpret FILE (the default)
  tokens FILE   print the tokens of FILE
  ast FILE      print the parsed statements of FILE
  check FILE    report every operator type error in FILE
  emit FILE     print LLVM IR for FILE (to -o OUT when given)
  repl          read and run one line at a time
  version       print the version
`)
}
