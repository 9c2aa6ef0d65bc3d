package interpreter

import (
	"fmt"

	"fortio.org/log"

	"jist/interpreter-go/pkg/ast"
)

// evaluateGuard re-tokenizes and re-classifies the guard text on every call,
// so a while guard observes whatever its body wrote to the variable table.
func (i *Interpreter) evaluateGuard(ctx *ExecutionContext, guard *ast.Guard) (bool, error) {
	tokens, err := i.tokenizer.TokenizeLine(guard.Condition, ctx.line)
	if err != nil {
		return false, fmt.Errorf("%s guard %q: %w", guard.NodeType(), guard.Condition, err)
	}
	nodes, err := ast.ClassifyAll(tokens)
	if err != nil {
		return false, fmt.Errorf("%s guard %q: %w", guard.NodeType(), guard.Condition, err)
	}
	ok, err := i.conditions.EvaluateCondition(ctx, nodes)
	if err != nil {
		return false, err
	}
	log.LogVf("guard %s(%s) -> %t", guard.NodeType(), guard.Condition, ok)
	return ok, nil
}

// body returns the statements governed by the header at pos and the position
// following them. With brace bodies and a "{" right after the header the body
// is the matching block; otherwise it is everything to the end of stmts.
func (i *Interpreter) body(stmts []Statement, pos int) ([]Statement, int, bool, error) {
	open := pos + 1
	if i.opts.LoopBody == LoopBodyBraces && open < len(stmts) && ast.Is(leadOf(stmts[open]), ast.NodeLeftBrace) {
		end, err := matchBrace(stmts, open)
		if err != nil {
			return nil, pos, false, err
		}
		return stmts[open+1 : end], end + 1, true, nil
	}
	return stmts[open:], len(stmts), false, nil
}

// matchBrace finds the "}" closing the "{" at open.
func matchBrace(stmts []Statement, open int) (int, error) {
	depth := 0
	for idx := open; idx < len(stmts); idx++ {
		switch lead := leadOf(stmts[idx]); {
		case ast.Is(lead, ast.NodeLeftBrace):
			depth++
		case ast.Is(lead, ast.NodeRightBrace):
			depth--
			if depth == 0 {
				return idx, nil
			}
		}
	}
	return 0, syntaxErrorf(UnbalancedBraces, "missing '}' for block opened on line %d", stmts[open].Line)
}

func guardAt(stmts []Statement, pos int) *ast.Guard {
	guard, _ := leadOf(stmts[pos]).(*ast.Guard)
	return guard
}

// compileWhile re-evaluates the guard before every iteration and runs the
// body while it holds. The first failing body statement aborts the loop.
func (i *Interpreter) compileWhile(ctx *ExecutionContext, stmts []Statement, pos int) (int, error) {
	guard := guardAt(stmts, pos)
	body, next, _, err := i.body(stmts, pos)
	if err != nil {
		return pos, err
	}
	outer := ctx.loopActive
	defer func() { ctx.loopActive = outer }()

	for iterations := 0; ; iterations++ {
		ok, err := i.evaluateGuard(ctx, guard)
		if err != nil {
			return pos, err
		}
		if !ok {
			break
		}
		if limit := i.opts.MaxLoopIterations; limit > 0 && iterations >= limit {
			return pos, &LoopLimitError{Condition: guard.Condition, Limit: limit}
		}
		ctx.loopActive = true
		if err := i.Execute(ctx, body); err != nil {
			return pos, err
		}
	}
	return next, nil
}

// compileIf runs the body when the guard holds. With brace bodies an else
// block or an else-if chain may follow; run is false while skipping a branch
// whose outcome is already decided, in which case no guard is evaluated.
func (i *Interpreter) compileIf(ctx *ExecutionContext, stmts []Statement, pos int, run bool) (int, error) {
	guard := guardAt(stmts, pos)
	body, next, braced, err := i.body(stmts, pos)
	if err != nil {
		return pos, err
	}
	taken := false
	if run {
		if taken, err = i.evaluateGuard(ctx, guard); err != nil {
			return pos, err
		}
	}
	if taken {
		if err := i.Execute(ctx, body); err != nil {
			return pos, err
		}
	}
	if !braced || next >= len(stmts) || !ast.Is(leadOf(stmts[next]), ast.NodeElse) {
		return next, nil
	}

	elseAt := next
	if elseAt+1 < len(stmts) && ast.Is(leadOf(stmts[elseAt+1]), ast.NodeIf) {
		return i.compileIf(ctx, stmts, elseAt+1, run && !taken)
	}
	alt, next, _, err := i.body(stmts, elseAt)
	if err != nil {
		return pos, err
	}
	if run && !taken {
		if err := i.Execute(ctx, alt); err != nil {
			return pos, err
		}
	}
	return next, nil
}

// compileFor evaluates its guard once and runs the body at most once.
func (i *Interpreter) compileFor(ctx *ExecutionContext, stmts []Statement, pos int) (int, error) {
	guard := guardAt(stmts, pos)
	body, next, _, err := i.body(stmts, pos)
	if err != nil {
		return pos, err
	}
	ok, err := i.evaluateGuard(ctx, guard)
	if err != nil || !ok {
		return next, err
	}
	if err := i.Execute(ctx, body); err != nil {
		return pos, err
	}
	return next, nil
}

// declareFunction registers the body following a function header. With brace
// bodies the "{" block is required.
func (i *Interpreter) declareFunction(ctx *ExecutionContext, stmts []Statement, pos int, name string) (int, error) {
	body, next, braced, err := i.body(stmts, pos)
	if err != nil {
		return pos, err
	}
	if i.opts.LoopBody == LoopBodyBraces && !braced {
		return pos, syntaxErrorf(UnbalancedBraces, "function '%s' needs a '{' body", name)
	}
	return next, i.functions.Declare(ctx, name, body)
}
