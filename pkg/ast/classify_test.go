package ast

import (
	"errors"
	"strconv"
	"testing"

	"jist/interpreter-go/pkg/lexer"
	"jist/interpreter-go/pkg/runtime"
)

func TestClassifyLiterals(t *testing.T) {
	cases := []struct {
		tok  lexer.Token
		want string
	}{
		{lexer.Token{Kind: lexer.KindInt, Text: "42"}, "Int(42)"},
		{lexer.Token{Kind: lexer.KindFloat, Text: "1.5"}, "Float(1.5)"},
		{lexer.Token{Kind: lexer.KindString, Text: "hi"}, `String("hi")`},
		{lexer.Token{Kind: lexer.KindChar, Text: "q"}, "Char('q')"},
		{lexer.Token{Kind: lexer.KindBool, Text: "false"}, "Bool(false)"},
		{lexer.Token{Kind: lexer.KindOperator, Text: "*"}, "Operator(*)"},
		{lexer.Token{Kind: lexer.KindAssignmentOperator, Text: "="}, "AssignmentOperator(=)"},
		{lexer.Token{Kind: lexer.KindVariable, Text: "x"}, "VariableDecl(x)"},
		{lexer.Token{Kind: lexer.KindVariableType, Text: "int"}, "VariableTypeTag(int)"},
		{lexer.Token{Kind: lexer.KindVariableCall, Text: "x"}, "VariableRef(x)"},
		{lexer.Token{Kind: lexer.KindFunction, Text: "f"}, "FunctionDecl(f)"},
		{lexer.Token{Kind: lexer.KindFunctionCall, Text: "f"}, "FunctionCall(f)"},
		{lexer.Token{Kind: lexer.KindWhile, Text: "x > 0"}, "While(x > 0)"},
		{lexer.Token{Kind: lexer.KindIf, Text: "x"}, "If(x)"},
		{lexer.Token{Kind: lexer.KindFor, Text: "x"}, "For(x)"},
		{lexer.Token{Kind: lexer.KindElse}, "Else"},
		{lexer.Token{Kind: lexer.KindSemiColon}, "SemiColon"},
		{lexer.Token{Kind: lexer.KindLeftParen}, "LeftParenthesis"},
		{lexer.Token{Kind: lexer.KindRightBrace}, "RightCurly"},
		{lexer.Token{Kind: lexer.KindLeftBracket}, "LeftBracket"},
		{lexer.Token{Kind: lexer.KindArgumentSeparator}, "ArgumentSeparator"},
		{lexer.Token{Kind: lexer.KindNone}, "None"},
	}
	for _, tc := range cases {
		node, err := Classify(tc.tok)
		if err != nil {
			t.Fatalf("%v: classify failed: %v", tc.tok, err)
		}
		if got := Describe(node); got != tc.want {
			t.Fatalf("%v: got %s, want %s", tc.tok, got, tc.want)
		}
	}
}

func TestClassifyIsTotalOverKnownKinds(t *testing.T) {
	for kind := lexer.KindNone; kind <= lexer.KindElse; kind++ {
		tok := lexer.Token{Kind: kind, Text: "1"}
		switch kind {
		case lexer.KindBool:
			tok.Text = "true"
		case lexer.KindChar:
			tok.Text = "c"
		}
		if _, err := Classify(tok); err != nil {
			t.Fatalf("kind %s has no mapping: %v", kind, err)
		}
	}
}

func TestClassifyUnrecognizedKind(t *testing.T) {
	_, err := Classify(lexer.Token{Kind: lexer.Kind(999)})
	var classErr *ClassificationError
	if !errors.As(err, &classErr) {
		t.Fatalf("expected ClassificationError, got %v", err)
	}
	if classErr.Kind != Unrecognized {
		t.Fatalf("expected Unrecognized, got %v", classErr.Kind)
	}
}

func TestClassifyMalformedLiterals(t *testing.T) {
	for _, tok := range []lexer.Token{
		{Kind: lexer.KindInt, Text: "12x"},
		{Kind: lexer.KindInt, Text: "3000000000"},
		{Kind: lexer.KindFloat, Text: "1.2.3"},
		{Kind: lexer.KindBool, Text: "yes"},
		{Kind: lexer.KindChar, Text: "ab"},
		{Kind: lexer.KindChar, Text: ""},
	} {
		_, err := Classify(tok)
		var classErr *ClassificationError
		if !errors.As(err, &classErr) || classErr.Kind != MalformedLiteral {
			t.Fatalf("%v: expected MalformedLiteral, got %v", tok, err)
		}
	}
	_, err := Classify(lexer.Token{Kind: lexer.KindInt, Text: "3000000000"})
	if !errors.Is(err, strconv.ErrRange) {
		t.Fatalf("expected range error to be wrapped, got %v", err)
	}
}

func TestClassifyParsesTypeTagOnce(t *testing.T) {
	node, err := Classify(lexer.Token{Kind: lexer.KindVariableType, Text: "bool"})
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	tag, ok := node.(*VariableTypeTag)
	if !ok || !tag.Known || tag.Type != runtime.KindBool {
		t.Fatalf("unexpected tag %#v", node)
	}
	unknown := Ty("number")
	if unknown.Known {
		t.Fatalf("expected unknown tag to be marked")
	}
}

func TestClassifyAllStopsAtFirstFailure(t *testing.T) {
	_, err := ClassifyAll([]lexer.Token{
		{Kind: lexer.KindInt, Text: "1"},
		{Kind: lexer.KindInt, Text: "nope"},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}
