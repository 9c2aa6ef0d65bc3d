package interpreter

import (
	"math"

	"jist/interpreter-go/pkg/ast"
	"jist/interpreter-go/pkg/runtime"
)

// EvaluateExpression reduces a node sequence to one value by folding strictly
// left to right with no operator precedence: 1 + 2 * 3 is (1 + 2) * 3.
// A parenthesised group folds on its own and contributes one operand; groups
// nest. Leading declaration nodes (name, type tag, "=") are skipped.
func (i *Interpreter) EvaluateExpression(ctx *ExecutionContext, nodes []ast.Node) (runtime.Value, error) {
	nodes = trimDeclaration(nodes)
	value, pos, err := i.fold(ctx, nodes, 0, 0)
	if err != nil {
		return nil, err
	}
	if pos < len(nodes) {
		return nil, syntaxErrorf(UnbalancedParens, "unexpected ')' in expression")
	}
	if value == nil {
		return nil, syntaxErrorf(MissingOperand, "empty expression")
	}
	return value, nil
}

func trimDeclaration(nodes []ast.Node) []ast.Node {
	for len(nodes) > 0 {
		switch nodes[0].(type) {
		case *ast.VariableDecl, *ast.VariableTypeTag, *ast.AssignmentOperator:
			nodes = nodes[1:]
		default:
			return nodes
		}
	}
	return nodes
}

// fold consumes nodes from pos until the end of input or, when depth > 0, the
// right parenthesis closing the current group. It returns the accumulator and
// the position it stopped at.
func (i *Interpreter) fold(ctx *ExecutionContext, nodes []ast.Node, pos int, depth int) (runtime.Value, int, error) {
	var acc runtime.Value
	pending := ""
	for pos < len(nodes) {
		switch node := nodes[pos].(type) {
		case *ast.Operator:
			if pending != "" {
				return nil, pos, syntaxErrorf(MissingOperand, "operator '%s' follows operator '%s'", node.Symbol, pending)
			}
			if acc == nil && node.Symbol != "-" {
				return nil, pos, syntaxErrorf(MissingOperand, "expression cannot start with operator '%s'", node.Symbol)
			}
			pending = node.Symbol
		case *ast.Punctuation:
			switch node.NodeType() {
			case ast.NodeLeftParen:
				group, closeAt, err := i.fold(ctx, nodes, pos+1, depth+1)
				if err != nil {
					return nil, closeAt, err
				}
				if closeAt >= len(nodes) {
					return nil, closeAt, syntaxErrorf(UnbalancedParens, "missing ')' in expression")
				}
				if group == nil {
					return nil, closeAt, syntaxErrorf(MissingOperand, "empty parentheses in expression")
				}
				acc, err = combine(acc, pending, group)
				if err != nil {
					return nil, closeAt, err
				}
				pending = ""
				pos = closeAt
			case ast.NodeRightParen:
				if depth == 0 {
					return acc, pos, nil
				}
				if pending != "" {
					return nil, pos, syntaxErrorf(MissingOperand, "operator '%s' has no right operand", pending)
				}
				return acc, pos, nil
			default:
				return nil, pos, syntaxErrorf(UnhandledNode, "Unhandled node in operation: %s", ast.Describe(node))
			}
		default:
			if !ast.IsOperand(node) {
				return nil, pos, syntaxErrorf(UnhandledNode, "Unhandled node in operation: %s", ast.Describe(node))
			}
			operand, err := operandValue(ctx, node)
			if err != nil {
				return nil, pos, err
			}
			acc, err = combine(acc, pending, operand)
			if err != nil {
				return nil, pos, err
			}
			pending = ""
		}
		pos++
	}
	if pending != "" {
		return nil, pos, syntaxErrorf(MissingOperand, "operator '%s' has no right operand", pending)
	}
	return acc, pos, nil
}

func operandValue(ctx *ExecutionContext, node ast.Node) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.CharLiteral:
		return runtime.CharValue{Val: n.Value}, nil
	case *ast.BoolLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.VariableRef:
		return ctx.lookup(n.Name)
	default:
		return nil, syntaxErrorf(UnhandledNode, "Unhandled node in operation: %s", ast.Describe(node))
	}
}

// combine folds operand into the accumulator using the pending operator. A
// leading "-" with no accumulator negates the operand.
func combine(acc runtime.Value, pending string, operand runtime.Value) (runtime.Value, error) {
	if acc == nil {
		if pending == "-" {
			return negate(operand)
		}
		return operand, nil
	}
	if pending == "" {
		return nil, syntaxErrorf(MissingOperator, "missing operator before %s", runtime.Describe(operand))
	}
	return applyArithmetic(pending, acc, operand)
}

func negate(v runtime.Value) (runtime.Value, error) {
	switch n := v.(type) {
	case runtime.IntValue:
		if n.Val == math.MinInt32 {
			return nil, &ArithmeticError{Kind: Overflow, Operator: "-", Left: runtime.IntValue{}, Right: n}
		}
		return runtime.IntValue{Val: -n.Val}, nil
	case runtime.FloatValue:
		return runtime.FloatValue{Val: -n.Val}, nil
	default:
		return nil, &ArithmeticError{Kind: OperandType, Operator: "-", Right: v}
	}
}

// applyArithmetic implements + - * / over numeric operands. Two ints stay
// int; a float on either side promotes the other. Dividing by zero and any
// other operator symbol are fatal.
func applyArithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "+", "-", "*", "/":
	default:
		return nil, &ArithmeticError{Kind: UnknownOperator, Operator: op, Left: left, Right: right}
	}
	if !runtime.IsNumeric(left) || !runtime.IsNumeric(right) {
		return nil, &ArithmeticError{Kind: OperandType, Operator: op, Left: left, Right: right}
	}
	if lv, ok := left.(runtime.IntValue); ok {
		if rv, ok := right.(runtime.IntValue); ok {
			return intArithmetic(op, lv, rv)
		}
	}
	l, _ := runtime.ToFloat(left)
	r, _ := runtime.ToFloat(right)
	switch op {
	case "+":
		return runtime.FloatValue{Val: l + r}, nil
	case "-":
		return runtime.FloatValue{Val: l - r}, nil
	case "*":
		return runtime.FloatValue{Val: l * r}, nil
	default:
		if r == 0 {
			return nil, &ArithmeticError{Kind: DivisionByZero, Operator: op, Left: left, Right: right}
		}
		return runtime.FloatValue{Val: l / r}, nil
	}
}

func intArithmetic(op string, left, right runtime.IntValue) (runtime.Value, error) {
	l, r := int64(left.Val), int64(right.Val)
	var result int64
	switch op {
	case "+":
		result = l + r
	case "-":
		result = l - r
	case "*":
		result = l * r
	default:
		if r == 0 {
			return nil, &ArithmeticError{Kind: DivisionByZero, Operator: op, Left: left, Right: right}
		}
		result = l / r
	}
	if result < math.MinInt32 || result > math.MaxInt32 {
		return nil, &ArithmeticError{Kind: Overflow, Operator: op, Left: left, Right: right}
	}
	return runtime.IntValue{Val: int32(result)}, nil
}
