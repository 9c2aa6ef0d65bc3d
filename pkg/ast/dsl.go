package ast

import (
	"fmt"
	"strings"
)

// Short constructors used by tests and tooling.

func Int(v int32) *IntLiteral          { return NewIntLiteral(v) }
func Flt(v float64) *FloatLiteral      { return NewFloatLiteral(v) }
func Str(v string) *StringLiteral      { return NewStringLiteral(v) }
func Chr(v rune) *CharLiteral          { return NewCharLiteral(v) }
func Bool(v bool) *BoolLiteral         { return NewBoolLiteral(v) }
func Op(symbol string) *Operator       { return NewOperator(symbol) }
func Assign() *AssignmentOperator      { return NewAssignmentOperator("=") }
func Decl(name string) *VariableDecl   { return NewVariableDecl(name) }
func Ty(raw string) *VariableTypeTag   { return NewVariableTypeTag(raw) }
func Ref(name string) *VariableRef     { return NewVariableRef(name) }
func Call(name string) *FunctionCall   { return NewFunctionCall(name) }
func FnDecl(name string) *FunctionDecl { return NewFunctionDecl(name) }
func LParen() *Punctuation             { return NewPunctuation(NodeLeftParen) }
func RParen() *Punctuation             { return NewPunctuation(NodeRightParen) }
func LBrace() *Punctuation             { return NewPunctuation(NodeLeftBrace) }
func RBrace() *Punctuation             { return NewPunctuation(NodeRightBrace) }
func Semi() *Punctuation               { return NewPunctuation(NodeSemiColon) }
func IfNode(cond string) *Guard        { return NewGuard(NodeIf, cond) }
func WhileNode(cond string) *Guard     { return NewGuard(NodeWhile, cond) }
func ForNode(cond string) *Guard       { return NewGuard(NodeFor, cond) }
func ElseNode() *Else                  { return NewElse() }
func Nodes(nodes ...Node) []Node       { return nodes }
func Declare(name, typ string) []Node  { return []Node{Decl(name), Ty(typ), Assign()} }

// Describe renders a node for traces and error messages.
func Describe(n Node) string {
	switch node := n.(type) {
	case nil:
		return "<nil>"
	case *IntLiteral:
		return fmt.Sprintf("Int(%d)", node.Value)
	case *FloatLiteral:
		return fmt.Sprintf("Float(%g)", node.Value)
	case *StringLiteral:
		return fmt.Sprintf("String(%q)", node.Value)
	case *CharLiteral:
		return fmt.Sprintf("Char(%q)", node.Value)
	case *BoolLiteral:
		return fmt.Sprintf("Bool(%t)", node.Value)
	case *Operator:
		return fmt.Sprintf("Operator(%s)", node.Symbol)
	case *AssignmentOperator:
		return fmt.Sprintf("AssignmentOperator(%s)", node.Symbol)
	case *VariableDecl:
		return fmt.Sprintf("VariableDecl(%s)", node.Name)
	case *VariableTypeTag:
		return fmt.Sprintf("VariableTypeTag(%s)", node.Raw)
	case *FunctionDecl:
		return fmt.Sprintf("FunctionDecl(%s)", node.Name)
	case *FunctionCall:
		return fmt.Sprintf("FunctionCall(%s)", node.Name)
	case *VariableRef:
		return fmt.Sprintf("VariableRef(%s)", node.Name)
	case *Guard:
		return fmt.Sprintf("%s(%s)", node.NodeType(), node.Condition)
	default:
		return string(n.NodeType())
	}
}

// DescribeAll renders a node sequence on one line.
func DescribeAll(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = Describe(n)
	}
	return strings.Join(parts, " ")
}
