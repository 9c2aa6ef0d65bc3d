package interpreter

import (
	"testing"

	"jist/interpreter-go/pkg/runtime"
)

// newTestInterpreter bounds every while loop so a broken guard fails the test
// instead of hanging it.
func newTestInterpreter(opts Options) *Interpreter {
	if opts.MaxLoopIterations == 0 {
		opts.MaxLoopIterations = 100
	}
	return New(opts)
}

func runSource(t *testing.T, opts Options, source string) (*ExecutionContext, error) {
	t.Helper()
	interp := newTestInterpreter(opts)
	ctx := interp.NewContext()
	return ctx, interp.Run(ctx, source)
}

func mustRun(t *testing.T, opts Options, source string) *ExecutionContext {
	t.Helper()
	ctx, err := runSource(t, opts, source)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return ctx
}

func valueOf(t *testing.T, ctx *ExecutionContext, name string) runtime.Value {
	t.Helper()
	v, ok := ctx.Variables.Lookup(name)
	if !ok {
		t.Fatalf("variable %s not declared", name)
	}
	return v.Value
}

func expectFloat(t *testing.T, ctx *ExecutionContext, name string, want float64) {
	t.Helper()
	got, ok := valueOf(t, ctx, name).(runtime.FloatValue)
	if !ok || got.Val != want {
		t.Fatalf("expected %s = float(%v), got %s", name, want, runtime.Describe(valueOf(t, ctx, name)))
	}
}

func expectString(t *testing.T, ctx *ExecutionContext, name string, want string) {
	t.Helper()
	got, ok := valueOf(t, ctx, name).(runtime.StringValue)
	if !ok || got.Val != want {
		t.Fatalf("expected %s = %q, got %s", name, want, runtime.Describe(valueOf(t, ctx, name)))
	}
}
