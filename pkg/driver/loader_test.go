package driver

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"jist/interpreter-go/pkg/interpreter"
)

func TestLoadSourceChecksExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.txt")
	writeFile(t, path, "x: int = 1;")
	_, err := LoadSource(path, DefaultConfig())
	if !errors.Is(err, ErrSourceExtension) {
		t.Fatalf("expected extension error, got %v", err)
	}
	if _, err := LoadSource(filepath.Join(dir, "missing.jist"), DefaultConfig()); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestRunFileDumpsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count.jist")
	writeFile(t, path, `count: int = 3;
while (count > 0) {
  count = count - 1;
}
`)
	cfg := DefaultConfig()
	cfg.MaxLoopIterations = 10
	var out strings.Builder
	result, err := RunFile(path, cfg, &out)
	if err != nil {
		t.Fatalf("RunFile returned error: %v", err)
	}
	if result.Statements != 5 {
		t.Fatalf("expected 5 statements, got %d", result.Statements)
	}
	want := "Variable Name: count\nVariable Type: float\nVariable Value: 0.0\n"
	if out.String() != want {
		t.Fatalf("unexpected dump %q", out.String())
	}
}

func TestRunFileReportsFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boom.jist")
	writeFile(t, path, "a: int = 1;\nb: int = a / 0;\n")
	var out strings.Builder
	result, err := RunFile(path, DefaultConfig(), &out)
	var arithErr *interpreter.ArithmeticError
	if !errors.As(err, &arithErr) {
		t.Fatalf("expected arithmetic error, got %v", err)
	}
	if result == nil || result.Context.Variables.Len() != 1 {
		t.Fatalf("expected partial context with one variable, got %#v", result)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no dump after a failed run, got %q", out.String())
	}
}
