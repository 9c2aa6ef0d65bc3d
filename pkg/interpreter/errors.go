package interpreter

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"jist/interpreter-go/pkg/lexer"
	"jist/interpreter-go/pkg/runtime"
)

// SyntaxErrorKind distinguishes malformed statements.
type SyntaxErrorKind int

const (
	IncompleteDeclaration SyntaxErrorKind = iota
	UnknownType
	UnhandledNode
	UnbalancedParens
	UnbalancedBraces
	UndefinedVariable
	MissingOperator
	MissingOperand
	NonBooleanCondition
	StrayElse
	EmptyStatement
	UnterminatedStatement
	UnknownFunction
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case IncompleteDeclaration:
		return "incomplete declaration"
	case UnknownType:
		return "unknown type"
	case UnhandledNode:
		return "unhandled node"
	case UnbalancedParens:
		return "unbalanced parentheses"
	case UnbalancedBraces:
		return "unbalanced braces"
	case UndefinedVariable:
		return "undefined variable"
	case MissingOperator:
		return "missing operator"
	case MissingOperand:
		return "missing operand"
	case NonBooleanCondition:
		return "non-boolean condition"
	case StrayElse:
		return "stray else"
	case EmptyStatement:
		return "empty statement"
	case UnterminatedStatement:
		return "unterminated statement"
	case UnknownFunction:
		return "unknown function"
	default:
		return fmt.Sprintf("syntax_error_%d", int(k))
	}
}

// SyntaxError reports a statement the compilers cannot make sense of.
type SyntaxError struct {
	Kind       SyntaxErrorKind
	Message    string
	Suggestion string
}

func (e *SyntaxError) Error() string {
	msg := "Syntax Error: " + e.Message
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", e.Suggestion)
	}
	return msg
}

func syntaxErrorf(kind SyntaxErrorKind, format string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ArithmeticErrorKind distinguishes arithmetic failures.
type ArithmeticErrorKind int

const (
	DivisionByZero ArithmeticErrorKind = iota
	UnknownOperator
	OperandType
	Overflow
)

// ArithmeticError is raised by the expression evaluator. Every kind is fatal
// for the run.
type ArithmeticError struct {
	Kind     ArithmeticErrorKind
	Operator string
	Left     runtime.Value
	Right    runtime.Value
}

func (e *ArithmeticError) Error() string {
	switch e.Kind {
	case DivisionByZero:
		return "Arithmetic Error: Division by zero."
	case UnknownOperator:
		return fmt.Sprintf("Arithmetic Error: Unrecognized operator '%s'", e.Operator)
	case Overflow:
		return fmt.Sprintf("Arithmetic Error: integer overflow in %s %s %s", runtime.Describe(e.Left), e.Operator, runtime.Describe(e.Right))
	default:
		if e.Left == nil {
			return fmt.Sprintf("Arithmetic Error: operator '%s' requires a numeric operand, got %s", e.Operator, runtime.Describe(e.Right))
		}
		return fmt.Sprintf("Arithmetic Error: operator '%s' requires numeric operands, got %s and %s", e.Operator, runtime.Describe(e.Left), runtime.Describe(e.Right))
	}
}

// LoopLimitError stops a while loop that exceeded the configured iteration cap.
type LoopLimitError struct {
	Condition string
	Limit     int
}

func (e *LoopLimitError) Error() string {
	return fmt.Sprintf("while (%s) exceeded %d iterations", e.Condition, e.Limit)
}

// StatementError attaches the source line of the failing statement.
type StatementError struct {
	Line int
	Err  error
}

func (e *StatementError) Error() string {
	if e.Line <= 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Err.Error())
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// atLine wraps err once with the statement's line. Lexer errors already name
// their line and are returned as is.
func atLine(err error, line int) error {
	if err == nil {
		return nil
	}
	var stmtErr *StatementError
	if errors.As(err, &stmtErr) || errors.Is(err, lexer.ErrLex) {
		return err
	}
	return &StatementError{Line: line, Err: err}
}

// CoercionWarning records a declaration whose value did not match its type.
// It never stops execution; the declared type's default is stored instead.
type CoercionWarning struct {
	Name        string
	Declared    runtime.Kind
	Got         runtime.Value
	Substituted runtime.Value
	Line        int
}

func (w CoercionWarning) String() string {
	if w.Declared == runtime.KindNull {
		return fmt.Sprintf("Warning: Value type mismatch for '%s'. Null type cannot have a value.", w.Name)
	}
	return fmt.Sprintf("Warning: Value type mismatch for '%s'. Expected %s, got %s; setting default %s value.", w.Name, w.Declared, runtime.Describe(w.Got), w.Declared)
}

// closestMatch picks the candidate nearest to target, or "" when nothing
// resembles it.
func closestMatch(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	// "integer" should still point at "int"
	for _, candidate := range candidates {
		if 3*len(candidate) >= len(target) && fuzzy.MatchFold(candidate, target) {
			return candidate
		}
	}
	return ""
}
