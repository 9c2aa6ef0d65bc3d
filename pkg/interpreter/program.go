package interpreter

import (
	"strings"

	"jist/interpreter-go/pkg/ast"
)

// Statement is one classified node sequence. Ordinary statements end at a
// ";" (not included); control headers, else, braces and function headers
// stand alone.
type Statement struct {
	Line  int
	Nodes []ast.Node
}

func standalone(n ast.Node) bool {
	if ast.IsControlHeader(n) {
		return true
	}
	switch n.(type) {
	case *ast.Else, *ast.FunctionDecl:
		return true
	}
	return ast.Is(n, ast.NodeLeftBrace) || ast.Is(n, ast.NodeRightBrace)
}

// Parse tokenizes source line by line, classifies every token and splits the
// node stream into statements. A statement may span several lines; it takes
// the line number it started on.
func (i *Interpreter) Parse(source string) ([]Statement, error) {
	var (
		stmts   []Statement
		pending []ast.Node
		start   int
	)
	for idx, raw := range strings.Split(source, "\n") {
		line := idx + 1
		tokens, err := i.tokenizer.TokenizeLine(strings.TrimRight(raw, "\r"), line)
		if err != nil {
			return nil, atLine(err, line)
		}
		nodes, err := ast.ClassifyAll(tokens)
		if err != nil {
			return nil, atLine(err, line)
		}
		for _, node := range nodes {
			switch {
			case ast.Is(node, ast.NodeSemiColon):
				if len(pending) == 0 {
					return nil, atLine(syntaxErrorf(EmptyStatement, "empty statement before ';'"), line)
				}
				stmts = append(stmts, Statement{Line: start, Nodes: pending})
				pending = nil
			case standalone(node):
				if len(pending) > 0 {
					return nil, atLine(syntaxErrorf(UnterminatedStatement, "missing ';' before %s", ast.Describe(node)), start)
				}
				stmts = append(stmts, Statement{Line: line, Nodes: []ast.Node{node}})
			default:
				if len(pending) == 0 {
					start = line
				}
				pending = append(pending, node)
			}
		}
	}
	if len(pending) > 0 {
		return nil, atLine(syntaxErrorf(UnterminatedStatement, "missing ';' after %s", ast.DescribeAll(pending)), start)
	}
	return stmts, nil
}
