package interpreter

import (
	"jist/interpreter-go/pkg/ast"
	"jist/interpreter-go/pkg/runtime"
)

// CompileDeclaration handles `name: type = expr`. The scan stops at the first
// node that can start an expression; everything from there is evaluated as
// the assigned value. A value that does not fit the declared type is replaced
// by the type's default and reported as a warning.
func (i *Interpreter) CompileDeclaration(ctx *ExecutionContext, nodes []ast.Node) (*runtime.Variable, error) {
	var (
		name      string
		declared  runtime.Kind
		typed     bool
		assigning bool
		value     runtime.Value
	)
scan:
	for idx, node := range nodes {
		switch n := node.(type) {
		case *ast.VariableDecl:
			name = n.Name
		case *ast.VariableTypeTag:
			if !n.Known {
				return nil, &SyntaxError{
					Kind:       UnknownType,
					Message:    "Unknown variable type '" + n.Raw + "'",
					Suggestion: closestMatch(n.Raw, runtime.TypeNames),
				}
			}
			declared, typed = n.Type, true
		case *ast.AssignmentOperator:
			assigning = true
		default:
			if !assigning || !startsExpression(node) {
				return nil, syntaxErrorf(UnhandledNode, "Unhandled node in declaration: %s", ast.Describe(node))
			}
			v, err := i.EvaluateExpression(ctx, nodes[idx:])
			if err != nil {
				return nil, err
			}
			value = v
			break scan
		}
	}
	if name == "" || !typed || !assigning {
		return nil, syntaxErrorf(IncompleteDeclaration, "Incomplete variable declaration: %s", ast.DescribeAll(nodes))
	}
	if value == nil {
		return nil, syntaxErrorf(IncompleteDeclaration, "Incomplete variable declaration: '%s' has no value", name)
	}
	widened := declared == runtime.KindInt && !i.opts.DisableIntWidening
	if widened {
		declared = runtime.KindFloat
	}
	value = coerce(ctx, name, declared, widened, value)
	return ctx.Variables.Declare(runtime.Variable{Name: name, Type: declared, Value: value, Widened: widened}), nil
}

// CompileAssignment handles `name = expr` against the most recent declaration
// of name, applying the same coercion as a declaration.
func (i *Interpreter) CompileAssignment(ctx *ExecutionContext, nodes []ast.Node) error {
	ref, ok := nodes[0].(*ast.VariableRef)
	if !ok || len(nodes) < 2 || !ast.Is(nodes[1], ast.NodeAssignmentOperator) {
		return syntaxErrorf(UnhandledNode, "malformed assignment: %s", ast.DescribeAll(nodes))
	}
	target, found := ctx.Variables.Lookup(ref.Name)
	if !found {
		return &SyntaxError{
			Kind:       UndefinedVariable,
			Message:    "Undefined variable '" + ref.Name + "'",
			Suggestion: closestMatch(ref.Name, ctx.Variables.Names()),
		}
	}
	if len(nodes) == 2 {
		return syntaxErrorf(IncompleteDeclaration, "assignment to '%s' has no value", ref.Name)
	}
	value, err := i.EvaluateExpression(ctx, nodes[2:])
	if err != nil {
		return err
	}
	return ctx.Variables.Assign(ref.Name, coerce(ctx, ref.Name, target.Type, target.Widened, value))
}

// coerce fits value to the declared type. Only a variable widened from int
// accepts an int value, promoted to float; any other mismatch warns and
// stores the type's default.
func coerce(ctx *ExecutionContext, name string, declared runtime.Kind, widened bool, value runtime.Value) runtime.Value {
	if declared == runtime.KindNull {
		ctx.warn(CoercionWarning{Name: name, Declared: declared, Got: value, Substituted: runtime.NullValue{}})
		return runtime.NullValue{}
	}
	if value.Kind() == declared {
		return value
	}
	if iv, ok := value.(runtime.IntValue); ok && widened {
		return runtime.FloatValue{Val: float64(iv.Val)}
	}
	substitute := runtime.DefaultFor(declared)
	ctx.warn(CoercionWarning{Name: name, Declared: declared, Got: value, Substituted: substitute})
	return substitute
}

func startsExpression(n ast.Node) bool {
	if ast.IsOperand(n) || ast.Is(n, ast.NodeLeftParen) {
		return true
	}
	op, ok := n.(*ast.Operator)
	return ok && op.Symbol == "-"
}
