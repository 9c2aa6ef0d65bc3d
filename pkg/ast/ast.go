package ast

import "jist/interpreter-go/pkg/runtime"

type NodeType string

const (
	NodeIntLiteral         NodeType = "IntLiteral"
	NodeFloatLiteral       NodeType = "FloatLiteral"
	NodeStringLiteral      NodeType = "StringLiteral"
	NodeCharLiteral        NodeType = "CharLiteral"
	NodeBoolLiteral        NodeType = "BoolLiteral"
	NodeOperator           NodeType = "Operator"
	NodeAssignmentOperator NodeType = "AssignmentOperator"
	NodeLeftParen          NodeType = "LeftParenthesis"
	NodeRightParen         NodeType = "RightParenthesis"
	NodeLeftBrace          NodeType = "LeftCurly"
	NodeRightBrace         NodeType = "RightCurly"
	NodeLeftBracket        NodeType = "LeftBracket"
	NodeRightBracket       NodeType = "RightBracket"
	NodeArgumentSeparator  NodeType = "ArgumentSeparator"
	NodeSemiColon          NodeType = "SemiColon"
	NodeVariableDecl       NodeType = "VariableDecl"
	NodeVariableTypeTag    NodeType = "VariableTypeTag"
	NodeFunctionDecl       NodeType = "FunctionDecl"
	NodeFunctionCall       NodeType = "FunctionCall"
	NodeVariableRef        NodeType = "VariableRef"
	NodeIf                 NodeType = "If"
	NodeWhile              NodeType = "While"
	NodeFor                NodeType = "For"
	NodeElse               NodeType = "Else"
	NodeNone               NodeType = "None"
)

// Node is one classified token. Classification is context free, so each node
// carries only what its own token determines.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Literals

type IntLiteral struct {
	nodeImpl
	Value int32 `json:"value"`
}

func NewIntLiteral(value int32) *IntLiteral {
	return &IntLiteral{nodeImpl: newNodeImpl(NodeIntLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type CharLiteral struct {
	nodeImpl
	Value rune `json:"value"`
}

func NewCharLiteral(value rune) *CharLiteral {
	return &CharLiteral{nodeImpl: newNodeImpl(NodeCharLiteral), Value: value}
}

type BoolLiteral struct {
	nodeImpl
	Value bool `json:"value"`
}

func NewBoolLiteral(value bool) *BoolLiteral {
	return &BoolLiteral{nodeImpl: newNodeImpl(NodeBoolLiteral), Value: value}
}

// Structural

type Operator struct {
	nodeImpl
	Symbol string `json:"symbol"`
}

func NewOperator(symbol string) *Operator {
	return &Operator{nodeImpl: newNodeImpl(NodeOperator), Symbol: symbol}
}

type AssignmentOperator struct {
	nodeImpl
	Symbol string `json:"symbol"`
}

func NewAssignmentOperator(symbol string) *AssignmentOperator {
	return &AssignmentOperator{nodeImpl: newNodeImpl(NodeAssignmentOperator), Symbol: symbol}
}

// Punctuation covers the payload-free delimiters; NodeType tells them apart.
type Punctuation struct {
	nodeImpl
}

func NewPunctuation(kind NodeType) *Punctuation {
	return &Punctuation{nodeImpl: newNodeImpl(kind)}
}

// Declarative

type VariableDecl struct {
	nodeImpl
	Name string `json:"name"`
}

func NewVariableDecl(name string) *VariableDecl {
	return &VariableDecl{nodeImpl: newNodeImpl(NodeVariableDecl), Name: name}
}

// VariableTypeTag keeps the raw spelling for diagnostics alongside the parsed
// kind. Known is false when Raw names no supported type.
type VariableTypeTag struct {
	nodeImpl
	Raw   string       `json:"raw"`
	Type  runtime.Kind `json:"-"`
	Known bool         `json:"-"`
}

func NewVariableTypeTag(raw string) *VariableTypeTag {
	kind, ok := runtime.ParseKind(raw)
	return &VariableTypeTag{nodeImpl: newNodeImpl(NodeVariableTypeTag), Raw: raw, Type: kind, Known: ok}
}

type FunctionDecl struct {
	nodeImpl
	Name string `json:"name"`
}

func NewFunctionDecl(name string) *FunctionDecl {
	return &FunctionDecl{nodeImpl: newNodeImpl(NodeFunctionDecl), Name: name}
}

type FunctionCall struct {
	nodeImpl
	Name string `json:"name"`
}

func NewFunctionCall(name string) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name}
}

type VariableRef struct {
	nodeImpl
	Name string `json:"name"`
}

func NewVariableRef(name string) *VariableRef {
	return &VariableRef{nodeImpl: newNodeImpl(NodeVariableRef), Name: name}
}

// Control

// Guard is a control header (if, while, for). Condition is the raw guard
// text; it is re-tokenized on every evaluation.
type Guard struct {
	nodeImpl
	Condition string `json:"condition"`
}

func NewGuard(kind NodeType, condition string) *Guard {
	return &Guard{nodeImpl: newNodeImpl(kind), Condition: condition}
}

type Else struct {
	nodeImpl
}

func NewElse() *Else {
	return &Else{nodeImpl: newNodeImpl(NodeElse)}
}

type None struct {
	nodeImpl
}

func NewNone() *None {
	return &None{nodeImpl: newNodeImpl(NodeNone)}
}

// IsOperand reports whether the node yields a value inside an expression.
func IsOperand(n Node) bool {
	switch n.(type) {
	case *IntLiteral, *FloatLiteral, *StringLiteral, *CharLiteral, *BoolLiteral, *VariableRef:
		return true
	default:
		return false
	}
}

// IsControlHeader reports whether the node opens an if, while or for construct.
func IsControlHeader(n Node) bool {
	if n == nil {
		return false
	}
	switch n.NodeType() {
	case NodeIf, NodeWhile, NodeFor:
		return true
	default:
		return false
	}
}

// Is reports whether the node has the given type.
func Is(n Node, kind NodeType) bool {
	return n != nil && n.NodeType() == kind
}
