package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "lox.yml"

var ErrEmptyConfigPath = errors.New("config: empty path")

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

type Config struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Emit     Emit   `yaml:"emit"`
	Repl     Repl   `yaml:"repl"`
}

type Emit struct {
	Output string `yaml:"output"`
}

type Repl struct {
	Prompt string `yaml:"prompt"`
}

// ValidationError lists every problem found in a config file.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Repl: Repl{
			Prompt: "> ",
		},
	}
}

// Load reads path over the defaults. A missing file at the default path is
// not an error; a missing file anywhere else is.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyConfigPath
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	return Decode(path, file)
}

func Decode(path string, r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	cfg := Default()
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(path string) error {
	errs := ValidationError{Path: path}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !logLevels[c.LogLevel] {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.Repl.Prompt == "" {
		errs.Issues = append(errs.Issues, "repl.prompt must not be empty")
	}

	if len(errs.Issues) != 0 {
		return &errs
	}
	return nil
}
