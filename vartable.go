package chipscript

// MaxVariables bounds the number of distinct variables of one run.
const MaxVariables = 32

// MaxNameLen bounds the length of a variable name. Longer names are
// silently truncated, not rejected.
const MaxNameLen = 15

// Variable is one interpreter binding: a bounded name and a 16 bit value.
type Variable struct {
	Name  string
	Value int16
}

// VariableTable is a bounded find-or-create mapping from identifier to value.
// Variables keep their insertion order, which is the order of first reference.
// Once the capacity is reached, references to new names still yield a zero
// value but the binding is not retained and writes to it are dropped.
type VariableTable struct {
	vars []Variable
}

// NewVariableTable creates an empty table.
func NewVariableTable() *VariableTable {
	return &VariableTable{
		vars: make([]Variable, 0, MaxVariables),
	}
}

// Get returns the value bound to name, creating a zero-valued binding on
// first reference. Referencing an unknown name therefore both creates it
// and yields 0.
func (t *VariableTable) Get(name string) int16 {
	v := t.find(truncateName(name))
	if v == nil {
		return 0
	}
	return v.Value
}

// Set binds value to name, creating the binding on first reference.
// When the table is full the write is silently dropped.
func (t *VariableTable) Set(name string, value int16) {
	v := t.find(truncateName(name))
	if v == nil {
		return
	}
	v.Value = value
}

// Len returns the number of retained bindings.
func (t *VariableTable) Len() int {
	return len(t.vars)
}

// Variables returns a copy of all bindings in insertion order.
func (t *VariableTable) Variables() []Variable {
	vars := make([]Variable, len(t.vars))
	copy(vars, t.vars)
	return vars
}

// Reset drops all bindings.
func (t *VariableTable) Reset() {
	t.vars = t.vars[:0]
}

// find locates the binding for name with a linear scan, creating it if the
// capacity allows. Returns nil when the name is new and the table is full.
func (t *VariableTable) find(name string) *Variable {
	for i := range t.vars {
		if t.vars[i].Name == name {
			return &t.vars[i]
		}
	}

	if len(t.vars) >= MaxVariables {
		return nil
	}

	t.vars = append(t.vars, Variable{Name: name})
	return &t.vars[len(t.vars)-1]
}

func truncateName(name string) string {
	if len(name) > MaxNameLen {
		return name[:MaxNameLen]
	}
	return name
}
