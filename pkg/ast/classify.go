package ast

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"jist/interpreter-go/pkg/lexer"
)

// ClassificationErrorKind distinguishes classification failures.
type ClassificationErrorKind int

const (
	// Unrecognized means the token kind has no node mapping.
	Unrecognized ClassificationErrorKind = iota
	// MalformedLiteral means a literal's text does not parse as its kind.
	MalformedLiteral
)

// ClassificationError reports a token that cannot become a node.
type ClassificationError struct {
	Kind  ClassificationErrorKind
	Token lexer.Token
	Err   error
}

func (e *ClassificationError) Error() string {
	switch e.Kind {
	case MalformedLiteral:
		if e.Err != nil {
			return fmt.Sprintf("classification error: malformed %s literal %q: %v", e.Token.Kind, e.Token.Text, e.Err)
		}
		return fmt.Sprintf("classification error: malformed %s literal %q", e.Token.Kind, e.Token.Text)
	default:
		return fmt.Sprintf("classification error: unrecognized token kind %s", e.Token.Kind)
	}
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// Classify maps one token to exactly one node. It looks at nothing but the
// token itself.
func Classify(tok lexer.Token) (Node, error) {
	switch tok.Kind {
	case lexer.KindInt:
		v, err := strconv.ParseInt(tok.Text, 10, 32)
		if err != nil {
			return nil, &ClassificationError{Kind: MalformedLiteral, Token: tok, Err: err}
		}
		return NewIntLiteral(int32(v)), nil
	case lexer.KindFloat:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &ClassificationError{Kind: MalformedLiteral, Token: tok, Err: err}
		}
		return NewFloatLiteral(v), nil
	case lexer.KindString:
		return NewStringLiteral(tok.Text), nil
	case lexer.KindChar:
		r, size := utf8.DecodeRuneInString(tok.Text)
		if size == 0 || size != len(tok.Text) || r == utf8.RuneError {
			return nil, &ClassificationError{Kind: MalformedLiteral, Token: tok}
		}
		return NewCharLiteral(r), nil
	case lexer.KindBool:
		switch tok.Text {
		case "true":
			return NewBoolLiteral(true), nil
		case "false":
			return NewBoolLiteral(false), nil
		default:
			return nil, &ClassificationError{Kind: MalformedLiteral, Token: tok}
		}
	case lexer.KindOperator:
		return NewOperator(tok.Text), nil
	case lexer.KindAssignmentOperator:
		return NewAssignmentOperator(tok.Text), nil
	case lexer.KindLeftParen:
		return NewPunctuation(NodeLeftParen), nil
	case lexer.KindRightParen:
		return NewPunctuation(NodeRightParen), nil
	case lexer.KindLeftBrace:
		return NewPunctuation(NodeLeftBrace), nil
	case lexer.KindRightBrace:
		return NewPunctuation(NodeRightBrace), nil
	case lexer.KindLeftBracket:
		return NewPunctuation(NodeLeftBracket), nil
	case lexer.KindRightBracket:
		return NewPunctuation(NodeRightBracket), nil
	case lexer.KindArgumentSeparator:
		return NewPunctuation(NodeArgumentSeparator), nil
	case lexer.KindSemiColon:
		return NewPunctuation(NodeSemiColon), nil
	case lexer.KindVariable:
		return NewVariableDecl(tok.Text), nil
	case lexer.KindVariableType:
		return NewVariableTypeTag(tok.Text), nil
	case lexer.KindFunction:
		return NewFunctionDecl(tok.Text), nil
	case lexer.KindFunctionCall:
		return NewFunctionCall(tok.Text), nil
	case lexer.KindVariableCall:
		return NewVariableRef(tok.Text), nil
	case lexer.KindIf:
		return NewGuard(NodeIf, tok.Text), nil
	case lexer.KindWhile:
		return NewGuard(NodeWhile, tok.Text), nil
	case lexer.KindFor:
		return NewGuard(NodeFor, tok.Text), nil
	case lexer.KindElse:
		return NewElse(), nil
	case lexer.KindNone:
		return NewNone(), nil
	default:
		return nil, &ClassificationError{Kind: Unrecognized, Token: tok}
	}
}

// ClassifyAll classifies a token sequence, stopping at the first failure.
func ClassifyAll(tokens []lexer.Token) ([]Node, error) {
	nodes := make([]Node, 0, len(tokens))
	for _, tok := range tokens {
		node, err := Classify(tok)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
