package interpreter

import (
	"sort"

	"fortio.org/log"

	"jist/interpreter-go/pkg/ast"
	"jist/interpreter-go/pkg/lexer"
	"jist/interpreter-go/pkg/runtime"
)

// Tokenizer splits one line of source into tokens stamped with its line
// number. Guards are re-tokenized through it on every evaluation.
type Tokenizer interface {
	TokenizeLine(source string, line int) ([]lexer.Token, error)
}

// LoopBodyMode selects how the body of a control header is delimited.
type LoopBodyMode string

const (
	// LoopBodyBraces takes the statements between the "{" following the
	// header and its matching "}". Without a "{" it falls back to positional.
	LoopBodyBraces LoopBodyMode = "braces"
	// LoopBodyPositional takes every statement after the header through the
	// end of the statement list; braces are ignored.
	LoopBodyPositional LoopBodyMode = "positional"
)

// IsValid reports whether the mode is recognised.
func (m LoopBodyMode) IsValid() bool {
	switch m {
	case LoopBodyBraces, LoopBodyPositional:
		return true
	default:
		return false
	}
}

// Options configures an Interpreter. The zero value gives brace-delimited
// bodies, append-on-redeclare, int-to-float widening and no iteration cap.
type Options struct {
	LoopBody           LoopBodyMode
	Redeclare          runtime.RedeclareMode
	DisableIntWidening bool
	// MaxLoopIterations caps each while loop; 0 means unlimited.
	MaxLoopIterations int

	Tokenizer  Tokenizer
	Conditions ConditionEvaluator
	Functions  FunctionHandler
}

// Interpreter compiles and executes statements. It holds configuration and
// collaborators only; all program state lives in an ExecutionContext.
type Interpreter struct {
	opts       Options
	tokenizer  Tokenizer
	conditions ConditionEvaluator
	functions  FunctionHandler
}

// New returns an interpreter, filling unset collaborators with the defaults.
func New(opts Options) *Interpreter {
	if opts.LoopBody == "" {
		opts.LoopBody = LoopBodyBraces
	}
	if opts.Redeclare == "" {
		opts.Redeclare = runtime.RedeclareAppend
	}
	i := &Interpreter{opts: opts}
	i.tokenizer = opts.Tokenizer
	if i.tokenizer == nil {
		i.tokenizer = lexer.NewScanner()
	}
	i.conditions = opts.Conditions
	if i.conditions == nil {
		i.conditions = &comparisonConditions{interp: i}
	}
	i.functions = opts.Functions
	if i.functions == nil {
		i.functions = &functionTable{interp: i}
	}
	return i
}

// Options returns the effective configuration.
func (i *Interpreter) Options() Options {
	return i.opts
}

// ExecutionContext is the mutable state threaded through every compiler
// call: the variable table, the loop flag, collected warnings and declared
// functions. It is owned by one driver and is not safe for concurrent use.
type ExecutionContext struct {
	Variables *runtime.VariableTable
	Warnings  []CoercionWarning

	loopActive bool
	line       int
	callDepth  int
	functions  map[string][]Statement
}

// NewContext creates an empty execution context using the interpreter's
// redeclaration policy.
func (i *Interpreter) NewContext() *ExecutionContext {
	return &ExecutionContext{
		Variables: runtime.NewVariableTable(i.opts.Redeclare),
		functions: make(map[string][]Statement),
	}
}

// LoopActive reports whether a while body is currently executing.
func (c *ExecutionContext) LoopActive() bool {
	return c.loopActive
}

func (c *ExecutionContext) warn(w CoercionWarning) {
	w.Line = c.line
	c.Warnings = append(c.Warnings, w)
	log.Warnf("%s", w.String())
}

// lookup resolves a variable reference: declared variables first, most recent
// wins, then builtin constants.
func (c *ExecutionContext) lookup(name string) (runtime.Value, error) {
	if v, ok := c.Variables.Lookup(name); ok {
		return v.Value, nil
	}
	if v, ok := runtime.Builtins[name]; ok {
		return v, nil
	}
	candidates := append(c.Variables.Names(), builtinNames()...)
	return nil, &SyntaxError{
		Kind:       UndefinedVariable,
		Message:    "Undefined variable '" + name + "'",
		Suggestion: closestMatch(name, candidates),
	}
}

// Run parses source and executes it against ctx.
func (i *Interpreter) Run(ctx *ExecutionContext, source string) error {
	stmts, err := i.Parse(source)
	if err != nil {
		return err
	}
	return i.Execute(ctx, stmts)
}

func builtinNames() []string {
	names := make([]string, 0, len(runtime.Builtins))
	for name := range runtime.Builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func leadOf(stmt Statement) ast.Node {
	if len(stmt.Nodes) == 0 {
		return nil
	}
	return stmt.Nodes[0]
}
