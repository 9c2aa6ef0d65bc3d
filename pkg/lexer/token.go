package lexer

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindString
	KindChar
	KindBool
	KindOperator
	KindAssignmentOperator
	KindLeftParen
	KindRightParen
	KindLeftBrace
	KindRightBrace
	KindLeftBracket
	KindRightBracket
	KindArgumentSeparator
	KindSemiColon
	KindVariable
	KindVariableType
	KindFunction
	KindFunctionCall
	KindVariableCall
	KindIf
	KindWhile
	KindFor
	KindElse
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindChar:
		return "Char"
	case KindBool:
		return "Bool"
	case KindOperator:
		return "Operator"
	case KindAssignmentOperator:
		return "AssignmentOperator"
	case KindLeftParen:
		return "LeftParenthesis"
	case KindRightParen:
		return "RightParenthesis"
	case KindLeftBrace:
		return "LeftCurly"
	case KindRightBrace:
		return "RightCurly"
	case KindLeftBracket:
		return "LeftBracket"
	case KindRightBracket:
		return "RightBracket"
	case KindArgumentSeparator:
		return "ArgumentSeparator"
	case KindSemiColon:
		return "SemiColon"
	case KindVariable:
		return "Variable"
	case KindVariableType:
		return "VariableType"
	case KindFunction:
		return "Function"
	case KindFunctionCall:
		return "FunctionCall"
	case KindVariableCall:
		return "VariableCall"
	case KindIf:
		return "If"
	case KindWhile:
		return "While"
	case KindFor:
		return "For"
	case KindElse:
		return "Else"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Token is one lexical unit of a statement. Text holds the raw payload: the
// literal text, the operator symbol, the identifier, or the unparsed guard of a
// control header.
type Token struct {
	Kind Kind
	Text string
	Line int
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}
