package runtime

import (
	"fmt"
	"io"
	"math"
)

// Variable is one named, typed entry of the variable table.
type Variable struct {
	Name  string
	Type  Kind
	Value Value
	// Widened marks a variable declared int and stored as float. Int values
	// assigned to it are promoted instead of replaced by the default.
	Widened bool
}

// RedeclareMode controls what declaring an existing name does.
type RedeclareMode string

const (
	// RedeclareAppend adds a new entry and leaves the earlier one in place.
	RedeclareAppend RedeclareMode = "append"
	// RedeclareReplace overwrites the latest entry with the same name.
	RedeclareReplace RedeclareMode = "replace"
)

// IsValid reports whether the mode is recognised.
func (m RedeclareMode) IsValid() bool {
	switch m {
	case RedeclareAppend, RedeclareReplace:
		return true
	default:
		return false
	}
}

// VariableTable is the ordered store of declared variables. It is the only
// program state shared across statements; there is no lexical scoping.
type VariableTable struct {
	entries []*Variable
	mode    RedeclareMode
}

// NewVariableTable creates an empty table. An empty mode means append.
func NewVariableTable(mode RedeclareMode) *VariableTable {
	if mode == "" {
		mode = RedeclareAppend
	}
	return &VariableTable{mode: mode}
}

// Declare records a variable. In append mode the table always grows by one;
// in replace mode an existing entry with the same name is overwritten in place.
func (t *VariableTable) Declare(v Variable) *Variable {
	if t.mode == RedeclareReplace {
		if existing := t.lookup(v.Name); existing != nil {
			existing.Type = v.Type
			existing.Value = v.Value
			existing.Widened = v.Widened
			return existing
		}
	}
	entry := v
	t.entries = append(t.entries, &entry)
	return &entry
}

// Lookup resolves a name; the most recent declaration wins.
func (t *VariableTable) Lookup(name string) (*Variable, bool) {
	v := t.lookup(name)
	return v, v != nil
}

func (t *VariableTable) lookup(name string) *Variable {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Name == name {
			return t.entries[i]
		}
	}
	return nil
}

// Assign updates the value of the most recent entry with the given name.
func (t *VariableTable) Assign(name string, value Value) error {
	v := t.lookup(name)
	if v == nil {
		return fmt.Errorf("Undefined variable '%s'", name)
	}
	v.Value = value
	return nil
}

// Len reports the number of entries.
func (t *VariableTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in declaration order.
func (t *VariableTable) Entries() []Variable {
	out := make([]Variable, len(t.entries))
	for i, v := range t.entries {
		out[i] = *v
	}
	return out
}

// Names returns the distinct declared names, first declaration first.
func (t *VariableTable) Names() []string {
	seen := make(map[string]struct{}, len(t.entries))
	names := make([]string, 0, len(t.entries))
	for _, v := range t.entries {
		if _, ok := seen[v.Name]; ok {
			continue
		}
		seen[v.Name] = struct{}{}
		names = append(names, v.Name)
	}
	return names
}

// Dump writes every entry as three human-readable lines.
func (t *VariableTable) Dump(w io.Writer) error {
	for _, v := range t.entries {
		if _, err := fmt.Fprintf(w, "Variable Name: %s\nVariable Type: %s\nVariable Value: %s\n", v.Name, v.Type, Format(v.Value)); err != nil {
			return err
		}
	}
	return nil
}

// Builtins are the constants resolvable by name when no variable shadows them.
var Builtins = map[string]Value{
	"PI": FloatValue{Val: math.Pi},
	"E":  FloatValue{Val: math.E},
}
