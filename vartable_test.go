package chipscript

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVariableTable_GetSet(t *testing.T) {
	table := NewVariableTable()

	if got := table.Get("x"); got != 0 {
		t.Errorf("Get() on first reference = %v, want 0", got)
	}
	if table.Len() != 1 {
		t.Fatalf("Len() after first reference = %v, want 1", table.Len())
	}

	table.Set("x", 10)
	if got := table.Get("x"); got != 10 {
		t.Errorf("Get() after Set = %v, want 10", got)
	}

	table.Set("y", -3)
	want := []Variable{{Name: "x", Value: 10}, {Name: "y", Value: -3}}
	if diff := cmp.Diff(want, table.Variables()); diff != "" {
		t.Errorf("Variables() mismatch (-want +got):\n%s", diff)
	}
}

func TestVariableTable_insertionOrder(t *testing.T) {
	table := NewVariableTable()

	// First reference through a read must count as well.
	table.Get("b")
	table.Set("a", 1)
	table.Get("b")
	table.Set("c", 2)

	var names []string
	for _, v := range table.Variables() {
		names = append(names, v.Name)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, names); diff != "" {
		t.Errorf("insertion order mismatch (-want +got):\n%s", diff)
	}
}

func TestVariableTable_capacity(t *testing.T) {
	table := NewVariableTable()

	for i := 0; i < MaxVariables; i++ {
		table.Set(fmt.Sprintf("v%d", i), int16(i))
	}
	if table.Len() != MaxVariables {
		t.Fatalf("Len() = %v, want %v", table.Len(), MaxVariables)
	}

	// A new name on a full table yields 0 without retaining the binding.
	if got := table.Get("overflow"); got != 0 {
		t.Errorf("Get() on full table = %v, want 0", got)
	}
	table.Set("overflow", 99)
	if table.Len() != MaxVariables {
		t.Errorf("Len() after overflow = %v, want %v", table.Len(), MaxVariables)
	}
	if got := table.Get("overflow"); got != 0 {
		t.Errorf("Get() after dropped Set = %v, want 0", got)
	}

	// Existing bindings stay writable.
	table.Set("v0", 42)
	if got := table.Get("v0"); got != 42 {
		t.Errorf("Get(v0) = %v, want 42", got)
	}
}

func TestVariableTable_nameTruncation(t *testing.T) {
	table := NewVariableTable()

	long := strings.Repeat("a", MaxNameLen) + "XYZ"
	table.Set(long, 5)

	if table.Len() != 1 {
		t.Fatalf("Len() = %v, want 1", table.Len())
	}
	if got := table.Variables()[0].Name; got != strings.Repeat("a", MaxNameLen) {
		t.Errorf("stored name = %q, want %d a's", got, MaxNameLen)
	}

	// Names equal in their first 15 bytes address the same binding.
	if got := table.Get(strings.Repeat("a", MaxNameLen) + "OTHER"); got != 5 {
		t.Errorf("Get() via truncated alias = %v, want 5", got)
	}
}

func TestVariableTable_Reset(t *testing.T) {
	table := NewVariableTable()
	table.Set("x", 1)
	table.Reset()

	if table.Len() != 0 {
		t.Errorf("Len() after Reset = %v, want 0", table.Len())
	}
	if got := table.Get("x"); got != 0 {
		t.Errorf("Get() after Reset = %v, want 0", got)
	}
}
