package runtime

import (
	"fmt"
	"strconv"
)

// Kind identifies the runtime value category. It doubles as the declared type
// of a variable, so type tags are parsed into a Kind once and compared as
// values from then on.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
	KindChar
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindNull:
		return "null"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// TypeNames lists the spellings accepted by ParseKind, in declaration order.
var TypeNames = []string{"int", "float", "string", "bool", "char", "null"}

// ParseKind maps a type tag such as "int" to its Kind.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "int":
		return KindInt, true
	case "float":
		return KindFloat, true
	case "string":
		return KindString, true
	case "bool":
		return KindBool, true
	case "char":
		return KindChar, true
	case "null":
		return KindNull, true
	default:
		return 0, false
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type IntValue struct {
	Val int32
}

func (IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

type CharValue struct {
	Val rune
}

func (CharValue) Kind() Kind { return KindChar }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// DefaultFor returns the zero value substituted when a declaration's computed
// value does not match its declared type.
func DefaultFor(kind Kind) Value {
	switch kind {
	case KindInt:
		return IntValue{}
	case KindFloat:
		return FloatValue{}
	case KindString:
		return StringValue{}
	case KindBool:
		return BoolValue{}
	case KindChar:
		return CharValue{}
	default:
		return NullValue{}
	}
}

// Equal compares two values. Values of different kinds are never equal, so
// IntValue{1} and FloatValue{1} compare unequal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case IntValue:
		return av.Val == b.(IntValue).Val
	case FloatValue:
		return av.Val == b.(FloatValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case CharValue:
		return av.Val == b.(CharValue).Val
	case NullValue:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether the value takes part in arithmetic.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case IntValue, FloatValue:
		return true
	default:
		return false
	}
}

// ToFloat widens a numeric value to float64.
func ToFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case IntValue:
		return float64(n.Val), true
	case FloatValue:
		return n.Val, true
	default:
		return 0, false
	}
}

// Format renders a value the way the variable dump prints it.
func Format(v Value) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case IntValue:
		return strconv.FormatInt(int64(val.Val), 10)
	case FloatValue:
		s := strconv.FormatFloat(val.Val, 'f', -1, 64)
		for _, ch := range s {
			if ch == '.' || ch == 'e' || ch == 'I' || ch == 'N' {
				return s
			}
		}
		return s + ".0"
	case StringValue:
		return val.Val
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case CharValue:
		if val.Val == 0 {
			return `\0`
		}
		return string(val.Val)
	case NullValue:
		return "null"
	default:
		return fmt.Sprintf("<%T>", v)
	}
}

// Describe renders a value together with its kind, e.g. float(3.0).
func Describe(v Value) string {
	if v == nil {
		return "null"
	}
	if _, ok := v.(StringValue); ok {
		return fmt.Sprintf("%s(%q)", v.Kind(), Format(v))
	}
	return fmt.Sprintf("%s(%s)", v.Kind(), Format(v))
}
