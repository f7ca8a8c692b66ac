package criteria

import (
	"testing"

	"github.com/minibase-io/minibase/pkg/types"
)

func cond(column string, op types.CompareOp, value any) types.Condition {
	return types.Condition{Column: column, Op: op, Value: value}
}

func TestMatchesEmptyCriteria(t *testing.T) {
	if !Matches(types.Row{"id": 1}, nil) {
		t.Error("empty criteria must match every row")
	}
	if !Matches(types.Row{}, []types.Condition{}) {
		t.Error("empty criteria must match the empty row")
	}
}

// Loose equality is deliberate: numeric and string representations of the
// same logical value compare equal.
func TestMatchesLooseEquality(t *testing.T) {
	tests := []struct {
		name  string
		row   types.Row
		cond  types.Condition
		want  bool
	}{
		{"int eq int", types.Row{"age": 30}, cond("age", types.CmpEq, 30), true},
		{"int eq string", types.Row{"age": 30}, cond("age", types.CmpEq, "30"), true},
		{"float eq int", types.Row{"age": 30.0}, cond("age", types.CmpEq, 30), true},
		{"string eq string", types.Row{"name": "Ann"}, cond("name", types.CmpEq, "Ann"), true},
		{"string neq string", types.Row{"name": "Ann"}, cond("name", types.CmpNeq, "Bo"), true},
		{"neq same value", types.Row{"age": 30}, cond("age", types.CmpNeq, "30"), false},
		{"nil eq nil", types.Row{"age": nil}, cond("age", types.CmpEq, nil), true},
		{"absent column eq nil", types.Row{}, cond("age", types.CmpEq, nil), true},
		{"nil eq value", types.Row{"age": nil}, cond("age", types.CmpEq, 30), false},
		{"case sensitive strings", types.Row{"name": "Ann"}, cond("name", types.CmpEq, "ann"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.row, []types.Condition{tt.cond}); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesNumericOperators(t *testing.T) {
	row := types.Row{"age": 30}

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{"gt below", cond("age", types.CmpGt, 18), true},
		{"gt equal", cond("age", types.CmpGt, 30), false},
		{"gte equal", cond("age", types.CmpGte, 30), true},
		{"gte string operand", cond("age", types.CmpGte, "18"), true},
		{"lt above", cond("age", types.CmpLt, 100), true},
		{"lte equal", cond("age", types.CmpLte, 30), true},
		{"non-numeric value is false", cond("age", types.CmpGt, "abc"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(row, []types.Condition{tt.cond}); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}

	// Non-numeric column value never throws, it just fails the condition.
	if Matches(types.Row{"age": "unknown"}, []types.Condition{cond("age", types.CmpGte, 18)}) {
		t.Error("non-coercible column value must evaluate false")
	}
	if Matches(types.Row{}, []types.Condition{cond("age", types.CmpGte, 18)}) {
		t.Error("absent column must evaluate false for numeric operators")
	}
}

func TestMatchesContains(t *testing.T) {
	tests := []struct {
		name string
		row  types.Row
		cond types.Condition
		want bool
	}{
		{"substring", types.Row{"name": "Annabel"}, cond("name", types.CmpContains, "nab"), true},
		{"case insensitive", types.Row{"name": "Annabel"}, cond("name", types.CmpContains, "ANNA"), true},
		{"no match", types.Row{"name": "Annabel"}, cond("name", types.CmpContains, "xyz"), false},
		{"numeric column stringified", types.Row{"id": 12345}, cond("id", types.CmpContains, "234"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.row, []types.Condition{tt.cond}); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesIn(t *testing.T) {
	row := types.Row{"state": "active"}

	if !Matches(row, []types.Condition{cond("state", types.CmpIn, []any{"active", "paused"})}) {
		t.Error("in must match a listed value")
	}
	if Matches(row, []types.Condition{cond("state", types.CmpIn, []any{"closed"})}) {
		t.Error("in must not match an unlisted value")
	}
	// Membership uses loose equality per element.
	if !Matches(types.Row{"id": 2}, []types.Condition{cond("id", types.CmpIn, []any{"1", "2"})}) {
		t.Error("in must use loose equality for membership")
	}
	// A non-list value never throws.
	if Matches(row, []types.Condition{cond("state", types.CmpIn, "active")}) {
		t.Error("in with a non-list value must evaluate false")
	}
}

func TestMatchesConjunction(t *testing.T) {
	row := types.Row{"name": "Ann", "age": 30}
	conds := []types.Condition{
		cond("age", types.CmpGte, 18),
		cond("name", types.CmpEq, "Ann"),
	}
	if !Matches(row, conds) {
		t.Error("all conditions hold, row must match")
	}

	conds = append(conds, cond("age", types.CmpLt, 21))
	if Matches(row, conds) {
		t.Error("one failing condition must fail the conjunction")
	}
}

func TestMatchesUnknownOperator(t *testing.T) {
	if Matches(types.Row{"a": 1}, []types.Condition{cond("a", "like", 1)}) {
		t.Error("unknown operator must evaluate false")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"numeric ascending", 1, 2, -1},
		{"numeric equal mixed types", int64(5), 5.0, 0},
		{"numeric string coerced", "10", 9, 1},
		{"string fallback", "apple", "banana", -1},
		{"nil first", nil, 0, -1},
		{"nil pair", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
