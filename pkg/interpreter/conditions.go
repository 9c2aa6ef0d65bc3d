package interpreter

import (
	"strings"

	"jist/interpreter-go/pkg/ast"
	"jist/interpreter-go/pkg/runtime"
)

// ConditionEvaluator decides a guard. The nodes come from re-tokenizing the
// guard text, so they reflect the variable table at the time of the call.
type ConditionEvaluator interface {
	EvaluateCondition(ctx *ExecutionContext, nodes []ast.Node) (bool, error)
}

// comparisonConditions is the default evaluator. Clauses joined by && and ||
// fold left to right without precedence and short-circuit. A clause is either
// a comparison of two arithmetic expressions, a parenthesised condition, or an
// expression that must yield a bool.
type comparisonConditions struct {
	interp *Interpreter
}

func isLogical(n ast.Node) (string, bool) {
	op, ok := n.(*ast.Operator)
	if !ok || (op.Symbol != "&&" && op.Symbol != "||") {
		return "", false
	}
	return op.Symbol, true
}

func isComparison(n ast.Node) (string, bool) {
	op, ok := n.(*ast.Operator)
	if !ok {
		return "", false
	}
	switch op.Symbol {
	case "==", "!=", "<", "<=", ">", ">=":
		return op.Symbol, true
	}
	return "", false
}

func (c *comparisonConditions) EvaluateCondition(ctx *ExecutionContext, nodes []ast.Node) (bool, error) {
	if len(nodes) == 0 {
		return false, syntaxErrorf(MissingOperand, "empty condition")
	}
	var (
		result  bool
		started bool
		joiner  string
		depth   int
		from    int
	)
	flush := func(to int) error {
		clause := nodes[from:to]
		if len(clause) == 0 {
			return syntaxErrorf(MissingOperand, "logical operator without a clause")
		}
		if started && ((joiner == "&&" && !result) || (joiner == "||" && result)) {
			return nil
		}
		v, err := c.clause(ctx, clause)
		if err != nil {
			return err
		}
		result, started = v, true
		return nil
	}
	for idx, node := range nodes {
		switch {
		case ast.Is(node, ast.NodeLeftParen):
			depth++
		case ast.Is(node, ast.NodeRightParen):
			depth--
			if depth < 0 {
				return false, syntaxErrorf(UnbalancedParens, "unexpected ')' in condition")
			}
		default:
			symbol, ok := isLogical(node)
			if !ok || depth > 0 {
				continue
			}
			if err := flush(idx); err != nil {
				return false, err
			}
			joiner, from = symbol, idx+1
		}
	}
	if depth != 0 {
		return false, syntaxErrorf(UnbalancedParens, "missing ')' in condition")
	}
	if err := flush(len(nodes)); err != nil {
		return false, err
	}
	return result, nil
}

func (c *comparisonConditions) clause(ctx *ExecutionContext, nodes []ast.Node) (bool, error) {
	if ast.Is(nodes[0], ast.NodeLeftParen) && closingParen(nodes, 0) == len(nodes)-1 {
		return c.EvaluateCondition(ctx, nodes[1:len(nodes)-1])
	}
	depth := 0
	for idx, node := range nodes {
		switch {
		case ast.Is(node, ast.NodeLeftParen):
			depth++
		case ast.Is(node, ast.NodeRightParen):
			depth--
		default:
			op, ok := isComparison(node)
			if !ok || depth > 0 {
				continue
			}
			if idx == 0 || idx == len(nodes)-1 {
				return false, syntaxErrorf(MissingOperand, "comparison '%s' needs two operands", op)
			}
			left, err := c.interp.EvaluateExpression(ctx, nodes[:idx])
			if err != nil {
				return false, err
			}
			right, err := c.interp.EvaluateExpression(ctx, nodes[idx+1:])
			if err != nil {
				return false, err
			}
			return compare(op, left, right)
		}
	}
	v, err := c.interp.EvaluateExpression(ctx, nodes)
	if err != nil {
		return false, err
	}
	b, ok := v.(runtime.BoolValue)
	if !ok {
		return false, syntaxErrorf(NonBooleanCondition, "condition %s is not a bool", runtime.Describe(v))
	}
	return b.Val, nil
}

func closingParen(nodes []ast.Node, open int) int {
	depth := 0
	for idx := open; idx < len(nodes); idx++ {
		switch {
		case ast.Is(nodes[idx], ast.NodeLeftParen):
			depth++
		case ast.Is(nodes[idx], ast.NodeRightParen):
			depth--
			if depth == 0 {
				return idx
			}
		}
	}
	return -1
}

// compare applies a comparison operator. Numbers compare across int and
// float; other kinds support equality against the same kind, and strings and
// chars are also ordered.
func compare(op string, left, right runtime.Value) (bool, error) {
	if runtime.IsNumeric(left) && runtime.IsNumeric(right) {
		var cmp int
		li, lok := left.(runtime.IntValue)
		ri, rok := right.(runtime.IntValue)
		if lok && rok {
			cmp = order(li.Val < ri.Val, li.Val > ri.Val)
		} else {
			l, _ := runtime.ToFloat(left)
			r, _ := runtime.ToFloat(right)
			cmp = order(l < r, l > r)
		}
		return ordered(op, cmp), nil
	}
	switch op {
	case "==":
		return runtime.Equal(left, right), nil
	case "!=":
		return !runtime.Equal(left, right), nil
	}
	switch l := left.(type) {
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return ordered(op, strings.Compare(l.Val, r.Val)), nil
		}
	case runtime.CharValue:
		if r, ok := right.(runtime.CharValue); ok {
			return ordered(op, order(l.Val < r.Val, l.Val > r.Val)), nil
		}
	}
	return false, &ArithmeticError{Kind: OperandType, Operator: op, Left: left, Right: right}
}

func order(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	default:
		return 0
	}
}

func ordered(op string, cmp int) bool {
	switch op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	default:
		return cmp >= 0
	}
}
