package interpreter

import (
	"errors"
	"strings"
	"testing"
)

func TestFunctionDeclareAndCall(t *testing.T) {
	ctx := mustRun(t, Options{}, `n: int = 0;
func bump() {
  n = n + 1;
}
bump();
bump();`)
	expectFloat(t, ctx, "n", 2)
}

func TestFunctionCalledFromLoop(t *testing.T) {
	ctx := mustRun(t, Options{}, `n: int = 3;
calls: int = 0;
func step() {
  n = n - 1;
  calls = calls + 1;
}
while (n > 0) {
  step();
}`)
	expectFloat(t, ctx, "n", 0)
	expectFloat(t, ctx, "calls", 3)
}

func TestFunctionErrors(t *testing.T) {
	_, err := runSource(t, Options{}, "func bump() {\n}\nbmp();")
	var synErr *SyntaxError
	if !errors.As(err, &synErr) || synErr.Kind != UnknownFunction {
		t.Fatalf("expected unknown function, got %v", err)
	}
	if synErr.Suggestion != "bump" {
		t.Fatalf("expected suggestion bump, got %q", synErr.Suggestion)
	}

	_, err = runSource(t, Options{}, "func bump() {\n}\nbump(1);")
	if !errors.As(err, &synErr) || synErr.Kind != UnhandledNode {
		t.Fatalf("expected arguments to be rejected, got %v", err)
	}

	_, err = runSource(t, Options{}, "func bump();")
	if !errors.As(err, &synErr) {
		t.Fatalf("expected a header without a body to fail, got %v", err)
	}
}

func TestFunctionRecursionIsBounded(t *testing.T) {
	_, err := runSource(t, Options{}, "func spin() {\n  spin();\n}\nspin();")
	if err == nil || !strings.Contains(err.Error(), "call depth") {
		t.Fatalf("expected call depth error, got %v", err)
	}
}
