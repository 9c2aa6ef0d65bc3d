package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/log"

	"jist/interpreter-go/pkg/interpreter"
)

// ErrSourceExtension marks a source path without the configured extension.
var ErrSourceExtension = errors.New("unsupported source file extension")

// LoadSource reads a program after checking its extension.
func LoadSource(path string, cfg *Config) (string, error) {
	if ext := filepath.Ext(path); ext != cfg.SourceExtension {
		return "", fmt.Errorf("%w: %s (expected %s)", ErrSourceExtension, path, cfg.SourceExtension)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Result is what a run leaves behind. Context is set even when the run
// failed, so the partial table can still be inspected.
type Result struct {
	Path       string
	Statements int
	Context    *interpreter.ExecutionContext
}

// RunFile loads, parses and executes one program, then dumps the variable
// table to out when execution succeeded.
func RunFile(path string, cfg *Config, out io.Writer) (*Result, error) {
	source, err := LoadSource(path, cfg)
	if err != nil {
		return nil, err
	}
	interp := interpreter.New(cfg.InterpreterOptions())
	stmts, err := interp.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	result := &Result{Path: path, Statements: len(stmts), Context: interp.NewContext()}
	log.Infof("running %s: %d statements", path, len(stmts))
	if err := interp.Execute(result.Context, stmts); err != nil {
		return result, fmt.Errorf("%s: %w", path, err)
	}
	log.Infof("finished %s: %d variables, %d warnings", path, result.Context.Variables.Len(), len(result.Context.Warnings))
	if err := result.Context.Variables.Dump(out); err != nil {
		return result, fmt.Errorf("write variable dump: %w", err)
	}
	return result, nil
}
