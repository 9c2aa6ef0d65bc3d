package interpreter

import (
	"fmt"
	"sort"

	"fortio.org/log"

	"jist/interpreter-go/pkg/ast"
)

// FunctionHandler resolves function declarations and calls.
type FunctionHandler interface {
	Declare(ctx *ExecutionContext, name string, body []Statement) error
	Call(ctx *ExecutionContext, name string, args []ast.Node) error
}

const maxCallDepth = 256

// functionTable is the default handler. Functions take no arguments and run
// in the single flat environment; a redeclaration replaces the body.
type functionTable struct {
	interp *Interpreter
}

func (f *functionTable) Declare(ctx *ExecutionContext, name string, body []Statement) error {
	ctx.functions[name] = body
	log.LogVf("declared function %s (%d statements)", name, len(body))
	return nil
}

func (f *functionTable) Call(ctx *ExecutionContext, name string, args []ast.Node) error {
	if len(args) != 2 || !ast.Is(args[0], ast.NodeLeftParen) || !ast.Is(args[1], ast.NodeRightParen) {
		return syntaxErrorf(UnhandledNode, "call to '%s': arguments are not supported: %s", name, ast.DescribeAll(args))
	}
	body, ok := ctx.functions[name]
	if !ok {
		names := make([]string, 0, len(ctx.functions))
		for declared := range ctx.functions {
			names = append(names, declared)
		}
		sort.Strings(names)
		return &SyntaxError{
			Kind:       UnknownFunction,
			Message:    "Unknown function '" + name + "'",
			Suggestion: closestMatch(name, names),
		}
	}
	if ctx.callDepth >= maxCallDepth {
		return fmt.Errorf("call to '%s': call depth exceeds %d", name, maxCallDepth)
	}
	ctx.callDepth++
	defer func() { ctx.callDepth-- }()
	return f.interp.Execute(ctx, body)
}
