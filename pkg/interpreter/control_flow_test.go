package interpreter

import (
	"errors"
	"testing"

	"jist/interpreter-go/pkg/ast"
)

const countdown = `count: int = 3;
ticks: int = 0;
while (count > 0) {
  count = count - 1;
  ticks = ticks + 1;
}`

func TestWhileCountdownBraces(t *testing.T) {
	ctx := mustRun(t, Options{}, countdown)
	expectFloat(t, ctx, "count", 0)
	expectFloat(t, ctx, "ticks", 3)
	if ctx.LoopActive() {
		t.Fatalf("expected loop flag cleared after the loop")
	}
}

func TestWhileCountdownPositional(t *testing.T) {
	source := `count: int = 3;
ticks: int = 0;
while (count > 0)
count = count - 1;
ticks = ticks + 1;`
	ctx := mustRun(t, Options{LoopBody: LoopBodyPositional}, source)
	expectFloat(t, ctx, "count", 0)
	expectFloat(t, ctx, "ticks", 3)
}

func TestWhileFalseGuardSkipsBody(t *testing.T) {
	ctx := mustRun(t, Options{}, `n: int = 0;
while (n > 0) {
  n = n - 1;
}
after: string = "ran";`)
	expectFloat(t, ctx, "n", 0)
	expectString(t, ctx, "after", "ran")
}

func TestWhileBodyFailureAborts(t *testing.T) {
	ctx, err := runSource(t, Options{}, `count: int = 3;
after: int = 0;
while (count > 0) {
  count = count - 1;
  boom: int = 1 / 0;
  after = after + 1;
}
done: int = 1;`)
	var arithErr *ArithmeticError
	if !errors.As(err, &arithErr) || arithErr.Kind != DivisionByZero {
		t.Fatalf("expected division by zero, got %v", err)
	}
	var stmtErr *StatementError
	if !errors.As(err, &stmtErr) || stmtErr.Line != 5 {
		t.Fatalf("expected failure on line 5, got %v", err)
	}
	expectFloat(t, ctx, "count", 2)
	expectFloat(t, ctx, "after", 0)
	if _, ok := ctx.Variables.Lookup("done"); ok {
		t.Fatalf("statements after the loop must not run")
	}
	if ctx.LoopActive() {
		t.Fatalf("expected loop flag restored after abort")
	}
}

func TestWhileIterationCap(t *testing.T) {
	ctx, err := runSource(t, Options{MaxLoopIterations: 5}, `x: int = 1;
while (x > 0) {
  x = x + 1;
}`)
	var limitErr *LoopLimitError
	if !errors.As(err, &limitErr) || limitErr.Limit != 5 {
		t.Fatalf("expected loop limit error, got %v", err)
	}
	expectFloat(t, ctx, "x", 6)
}

func TestNestedWhile(t *testing.T) {
	ctx := mustRun(t, Options{}, `i: int = 0;
total: int = 0;
while (i < 3) {
  j: int = 0;
  while (j < 2) {
    total = total + 1;
    j = j + 1;
  }
  i = i + 1;
}`)
	expectFloat(t, ctx, "total", 6)
}

type loopFlagRecorder struct {
	seen []bool
}

func (r *loopFlagRecorder) Declare(*ExecutionContext, string, []Statement) error { return nil }

func (r *loopFlagRecorder) Call(ctx *ExecutionContext, name string, args []ast.Node) error {
	r.seen = append(r.seen, ctx.LoopActive())
	return nil
}

func TestLoopFlagVisibleToHandlers(t *testing.T) {
	recorder := &loopFlagRecorder{}
	mustRun(t, Options{Functions: recorder}, `mark();
n: int = 1;
while (n > 0) {
  mark();
  n = n - 1;
}
mark();`)
	want := []bool{false, true, false}
	if len(recorder.seen) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), recorder.seen)
	}
	for idx := range want {
		if recorder.seen[idx] != want[idx] {
			t.Fatalf("call %d: expected loop flag %t, got %t", idx, want[idx], recorder.seen[idx])
		}
	}
}

func TestIfElseChain(t *testing.T) {
	source := func(x string) string {
		return "x: int = " + x + `;
r: string = "none";
if (x > 10) { r = "big"; } else if (x > 3) { r = "mid"; } else { r = "small"; }
tail: bool = true;`
	}
	for _, tc := range []struct {
		x    string
		want string
	}{
		{"20", "big"},
		{"5", "mid"},
		{"1", "small"},
	} {
		ctx := mustRun(t, Options{}, source(tc.x))
		expectString(t, ctx, "r", tc.want)
		if _, ok := ctx.Variables.Lookup("tail"); !ok {
			t.Fatalf("x=%s: statements after the if must run", tc.x)
		}
	}
}

func TestIfWithoutElse(t *testing.T) {
	ctx := mustRun(t, Options{}, `flag: bool = false;
hit: int = 0;
if (flag) {
  hit = 1;
}
hit = hit + 10;`)
	expectFloat(t, ctx, "hit", 10)
}

func TestStrayElse(t *testing.T) {
	_, err := runSource(t, Options{}, "else { x: int = 1; }")
	var synErr *SyntaxError
	if !errors.As(err, &synErr) || synErr.Kind != StrayElse {
		t.Fatalf("expected stray else, got %v", err)
	}
}

func TestUnbalancedBraces(t *testing.T) {
	for _, source := range []string{
		"n: int = 1;\nwhile (n > 0) {\n  n = n - 1;\n",
		"}",
	} {
		_, err := runSource(t, Options{}, source)
		var synErr *SyntaxError
		if !errors.As(err, &synErr) || synErr.Kind != UnbalancedBraces {
			t.Fatalf("%q: expected unbalanced braces, got %v", source, err)
		}
	}
}

func TestForRunsBodyAtMostOnce(t *testing.T) {
	ctx := mustRun(t, Options{}, `n: int = 0;
for (n < 5) {
  n = n + 1;
}
for (n > 5) {
  n = 100;
}`)
	expectFloat(t, ctx, "n", 1)
}

func TestPositionalModeIgnoresBraces(t *testing.T) {
	ctx := mustRun(t, Options{LoopBody: LoopBodyPositional}, `n: int = 2;
hits: int = 0;
while (n > 0)
{
  n = n - 1;
}
hits = hits + 1;`)
	expectFloat(t, ctx, "n", 0)
	expectFloat(t, ctx, "hits", 2)
}

func TestGuardErrorsPropagate(t *testing.T) {
	_, err := runSource(t, Options{}, "while (missing > 0) { }")
	var synErr *SyntaxError
	if !errors.As(err, &synErr) || synErr.Kind != UndefinedVariable {
		t.Fatalf("expected undefined variable from the guard, got %v", err)
	}
}

func TestLeadingParenIsNotSkipped(t *testing.T) {
	for _, mode := range []LoopBodyMode{LoopBodyBraces, LoopBodyPositional} {
		ctx, err := runSource(t, Options{LoopBody: mode}, "a: int = 1;\n(1 / 0);\nb: int = 2;")
		var synErr *SyntaxError
		if !errors.As(err, &synErr) || synErr.Kind != UnhandledNode {
			t.Fatalf("%s: expected unhandled node, got %v", mode, err)
		}
		if ctx.Variables.Len() != 1 {
			t.Fatalf("%s: expected the run to stop at line 2, got %d entries", mode, ctx.Variables.Len())
		}
	}
}

func TestGuardWithParenChar(t *testing.T) {
	ctx := mustRun(t, Options{}, `c: char = ')';
hit: int = 0;
if (c == ')') {
  hit = 1;
}`)
	expectFloat(t, ctx, "hit", 1)
}
