package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"gopkg.in/yaml.v3"

	"jist/interpreter-go/pkg/interpreter"
	"jist/interpreter-go/pkg/runtime"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "jist.yml"

// ErrConfigNotFound is returned by FindConfig when no jist.yml exists between
// the start directory and the filesystem root.
var ErrConfigNotFound = errors.New("jist.yml not found")

// Config represents the parsed contents of jist.yml.
type Config struct {
	Path              string
	SourceExtension   string
	LoopBody          interpreter.LoopBodyMode
	Redeclare         runtime.RedeclareMode
	WidenIntToFloat   bool
	MaxLoopIterations int
	LogLevel          string
}

type configFile struct {
	SourceExtension   string `yaml:"source_extension"`
	LoopBody          string `yaml:"loop_body"`
	Redeclare         string `yaml:"redeclare"`
	WidenIntToFloat   *bool  `yaml:"widen_int_to_float"`
	MaxLoopIterations int    `yaml:"max_loop_iterations"`
	LogLevel          string `yaml:"log_level"`
}

var logLevels = map[string]log.Level{
	"debug":   log.Debug,
	"verbose": log.Verbose,
	"info":    log.Info,
	"warning": log.Warning,
	"error":   log.Error,
}

// DefaultConfig is used when no jist.yml is found.
func DefaultConfig() *Config {
	return &Config{
		SourceExtension: ".jist",
		LoopBody:        interpreter.LoopBodyBraces,
		Redeclare:       runtime.RedeclareAppend,
		WidenIntToFloat: true,
		LogLevel:        "info",
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses jist.yml from disk. Omitted fields keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	if raw.SourceExtension != "" {
		cfg.SourceExtension = raw.SourceExtension
		if !strings.HasPrefix(cfg.SourceExtension, ".") {
			cfg.SourceExtension = "." + cfg.SourceExtension
		}
	}
	if raw.LoopBody != "" {
		cfg.LoopBody = interpreter.LoopBodyMode(strings.ToLower(raw.LoopBody))
	}
	if raw.Redeclare != "" {
		cfg.Redeclare = runtime.RedeclareMode(strings.ToLower(raw.Redeclare))
	}
	if raw.WidenIntToFloat != nil {
		cfg.WidenIntToFloat = *raw.WidenIntToFloat
	}
	cfg.MaxLoopIterations = raw.MaxLoopIterations
	if raw.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(raw.LogLevel)
	}
	return cfg
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.SourceExtension == "." {
		errs.Issues = append(errs.Issues, "source_extension must name an extension")
	}
	if !c.LoopBody.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("loop_body %q must be braces or positional", c.LoopBody))
	}
	if !c.Redeclare.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("redeclare %q must be append or replace", c.Redeclare))
	}
	if c.MaxLoopIterations < 0 {
		errs.Issues = append(errs.Issues, "max_loop_iterations must not be negative")
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q must be one of debug, verbose, info, warning, error", c.LogLevel))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Level maps log_level to a fortio log level.
func (c *Config) Level() log.Level {
	if lvl, ok := logLevels[c.LogLevel]; ok {
		return lvl
	}
	return log.Info
}

// InterpreterOptions translates the config into interpreter options.
func (c *Config) InterpreterOptions() interpreter.Options {
	return interpreter.Options{
		LoopBody:           c.LoopBody,
		Redeclare:          c.Redeclare,
		DisableIntWidening: !c.WidenIntToFloat,
		MaxLoopIterations:  c.MaxLoopIterations,
	}
}

// FindConfig walks up from start looking for jist.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// ResolveConfig loads the nearest jist.yml above start, or the defaults when
// there is none.
func ResolveConfig(start string) (*Config, error) {
	path, err := FindConfig(start)
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return LoadConfig(path)
}
