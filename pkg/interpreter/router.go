package interpreter

import (
	"fortio.org/log"

	"jist/interpreter-go/pkg/ast"
)

// Execute runs statements in order against ctx. The first failure stops the
// run and is returned with the line of the failing statement.
func (i *Interpreter) Execute(ctx *ExecutionContext, stmts []Statement) error {
	for pos := 0; pos < len(stmts); {
		next, err := i.route(ctx, stmts, pos)
		if err != nil {
			return err
		}
		pos = next
	}
	return nil
}

// route dispatches the statement at pos and returns the position of the next
// statement to run. Control constructs consume their bodies.
func (i *Interpreter) route(ctx *ExecutionContext, stmts []Statement, pos int) (int, error) {
	stmt := stmts[pos]
	ctx.line = stmt.Line
	log.LogVf("line %d: %s", stmt.Line, ast.DescribeAll(stmt.Nodes))
	braces := i.opts.LoopBody == LoopBodyBraces

	switch lead := leadOf(stmt).(type) {
	case *ast.Guard:
		var (
			next int
			err  error
		)
		switch lead.NodeType() {
		case ast.NodeWhile:
			next, err = i.compileWhile(ctx, stmts, pos)
		case ast.NodeFor:
			next, err = i.compileFor(ctx, stmts, pos)
		default:
			next, err = i.compileIf(ctx, stmts, pos, true)
		}
		return next, atLine(err, stmt.Line)
	case *ast.Else:
		if braces {
			return pos, atLine(syntaxErrorf(StrayElse, "'else' without a preceding 'if'"), stmt.Line)
		}
		return pos + 1, nil
	case *ast.FunctionDecl:
		next, err := i.declareFunction(ctx, stmts, pos, lead.Name)
		return next, atLine(err, stmt.Line)
	case *ast.Punctuation:
		switch lead.NodeType() {
		case ast.NodeLeftBrace:
			if !braces {
				return pos + 1, nil
			}
			end, err := matchBrace(stmts, pos)
			if err != nil {
				return pos, atLine(err, stmt.Line)
			}
			if err := i.Execute(ctx, stmts[pos+1:end]); err != nil {
				return pos, err
			}
			return end + 1, nil
		case ast.NodeRightBrace:
			if !braces {
				return pos + 1, nil
			}
			return pos, atLine(syntaxErrorf(UnbalancedBraces, "unexpected '}'"), stmt.Line)
		}
	}
	return pos + 1, atLine(i.RouteStatement(ctx, stmt.Nodes), stmt.Line)
}

// RouteStatement handles one simple statement by its leading node: a
// declaration, an assignment to an existing name, or a function call.
func (i *Interpreter) RouteStatement(ctx *ExecutionContext, nodes []ast.Node) error {
	if len(nodes) == 0 {
		return syntaxErrorf(EmptyStatement, "empty statement")
	}
	switch lead := nodes[0].(type) {
	case *ast.VariableDecl:
		_, err := i.CompileDeclaration(ctx, nodes)
		return err
	case *ast.VariableRef:
		if len(nodes) > 1 {
			if _, ok := nodes[1].(*ast.AssignmentOperator); ok {
				return i.CompileAssignment(ctx, nodes)
			}
		}
		return syntaxErrorf(UnhandledNode, "expression statement '%s' has no effect", ast.DescribeAll(nodes))
	case *ast.FunctionCall:
		return i.functions.Call(ctx, lead.Name, nodes[1:])
	default:
		return syntaxErrorf(UnhandledNode, "Unhandled node at start of statement: %s", ast.Describe(lead))
	}
}
