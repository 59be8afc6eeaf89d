package lox

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type programFixture struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

func loadProgramFixtures(t *testing.T) []programFixture {
	t.Helper()

	file, err := os.Open("testdata/programs.yml")
	require.NoError(t, err)
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var fixtures []programFixture
	require.NoError(t, decoder.Decode(&fixtures))
	require.NotEmpty(t, fixtures)

	return fixtures
}

func errorKind(err error) string {
	var (
		scanErr    *ScanError
		parseErr   *ParseError
		runtimeErr *RuntimeError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &scanErr):
		return "scan"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &runtimeErr):
		return "runtime"
	default:
		return err.Error()
	}
}

func TestRunnerPrograms(t *testing.T) {
	for _, f := range loadProgramFixtures(t) {
		t.Run(f.Name, func(t *testing.T) {
			var out bytes.Buffer
			err := NewRunner(&out, nil).Run(f.Source)

			assert.Equal(t, f.Error, errorKind(err))
			assert.Equal(t, f.Output, out.String())
		})
	}
}

func TestRunnerLogsStages(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var out bytes.Buffer
	r := NewRunner(&out, logger)
	require.NoError(t, r.Run("var x = 2; print 2 == 2;"))

	assert.Equal(t, "true\n", out.String())
	assert.Contains(t, logs.String(), "msg=scanned")
	assert.Contains(t, logs.String(), "msg=parsed")
	assert.Contains(t, logs.String(), "msg=define name=x value=2")
	assert.Contains(t, logs.String(), "msg=interpreted")
}

func TestRunnerSharesGlobals(t *testing.T) {
	r := NewRunner(&bytes.Buffer{}, nil)

	require.NoError(t, r.Run("var a = 1;"))
	require.NoError(t, r.Run("var b = \"two\";"))

	v, ok := r.Interpreter().Globals().Get("a")
	require.True(t, ok)
	assert.Equal(t, NumberValue(1), v)

	v, ok = r.Interpreter().Globals().Get("b")
	require.True(t, ok)
	assert.Equal(t, StringValue("two"), v)
}

func TestRunnerCheck(t *testing.T) {
	r := NewRunner(&bytes.Buffer{}, nil)

	assert.NoError(t, r.Check("print 1 + 2; var s = \"a\" + \"b\";"))

	err := r.Check("print -\"a\"; print true + 1;")
	var checkErr *CheckError
	require.True(t, errors.As(err, &checkErr))
	assert.Len(t, checkErr.Errors, 2)
	assert.Equal(t, "type check failed:\n- 1:7 undefined operation: 'string' has no operator '-'\n- 1:24 undefined operation: 'bool' + 'number'", err.Error())

	err = r.Check("print (;")
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestRunnerEmit(t *testing.T) {
	r := NewRunner(&bytes.Buffer{}, nil)

	text, err := r.Emit("print 1 + 2;")
	require.NoError(t, err)
	assert.Contains(t, text, "define i32 @main()")

	_, err = r.Emit("print \"x")
	var scanErr *ScanError
	assert.True(t, errors.As(err, &scanErr))
}

func TestRunnerTokens(t *testing.T) {
	r := NewRunner(&bytes.Buffer{}, nil)

	toks, err := r.Tokens("print 1;")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{TokenPrint, TokenNumber, TokenSemicolon, TokenEOF}, tokenTypes(toks))
}
