package interpreter

import (
	"errors"
	"testing"

	"jist/interpreter-go/pkg/ast"
	"jist/interpreter-go/pkg/lexer"
)

func conditionNodes(t *testing.T, text string) []ast.Node {
	t.Helper()
	tokens, err := lexer.NewScanner().Tokenize(text)
	if err != nil {
		t.Fatalf("tokenize %q: %v", text, err)
	}
	nodes, err := ast.ClassifyAll(tokens)
	if err != nil {
		t.Fatalf("classify %q: %v", text, err)
	}
	return nodes
}

func TestComparisonConditions(t *testing.T) {
	interp := newTestInterpreter(Options{})
	ctx := interp.NewContext()
	if err := interp.Run(ctx, `x: int = 5;
name: string = "jist";`); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	cases := []struct {
		cond string
		want bool
	}{
		{"1 < 2", true},
		{"2 <= 1", false},
		{"1 == 1.0", true},
		{"x != 5", false},
		{"x + 1 >= 6", true},
		{"(x + 1) > 10", false},
		{`name == "jist"`, true},
		{`"abc" < "abd"`, true},
		{"'b' > 'a'", true},
		{`1 == "1"`, false},
		{"true", true},
		{"x > 1 && x < 10", true},
		{"x > 100 || x == 5", true},
		{"(x > 1) && (x < 3)", false},
		{"x < 1 && missing > 0", false},
		{"x > 1 || missing > 0", true},
		{"false && true || true", true},
		{"((x > 1))", true},
	}
	for _, tc := range cases {
		got, err := interp.conditions.EvaluateCondition(ctx, conditionNodes(t, tc.cond))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.cond, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %t, got %t", tc.cond, tc.want, got)
		}
	}
}

func TestConditionErrors(t *testing.T) {
	interp := newTestInterpreter(Options{})
	ctx := interp.NewContext()

	_, err := interp.conditions.EvaluateCondition(ctx, conditionNodes(t, "1 + 1"))
	var synErr *SyntaxError
	if !errors.As(err, &synErr) || synErr.Kind != NonBooleanCondition {
		t.Fatalf("expected non-boolean condition, got %v", err)
	}

	_, err = interp.conditions.EvaluateCondition(ctx, conditionNodes(t, "true < false"))
	var arithErr *ArithmeticError
	if !errors.As(err, &arithErr) || arithErr.Kind != OperandType {
		t.Fatalf("expected operand type error, got %v", err)
	}

	for _, cond := range []string{"> 1", "1 <", "1 < 2 &&", "(1 < 2"} {
		_, err := interp.conditions.EvaluateCondition(ctx, conditionNodes(t, cond))
		if !errors.As(err, &synErr) {
			t.Fatalf("%q: expected SyntaxError, got %v", cond, err)
		}
	}
}

type fixedConditions bool

func (f fixedConditions) EvaluateCondition(*ExecutionContext, []ast.Node) (bool, error) {
	return bool(f), nil
}

func TestCustomConditionEvaluator(t *testing.T) {
	ctx := mustRun(t, Options{Conditions: fixedConditions(true)}, `hit: int = 0;
if (anything at all) {
  hit = 1;
}`)
	expectFloat(t, ctx, "hit", 1)
}
