// Package criteria evaluates row-filter conditions for select, update, and
// delete operations. Evaluation is pure and total: a value that cannot be
// coerced for an operator makes the condition false, never an error.
package criteria

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/minibase-io/minibase/pkg/types"
)

// Matches reports whether the row satisfies the conjunction of all
// conditions. An empty condition list matches every row. Condition order
// has no observable effect beyond early exit.
func Matches(row types.Row, conds []types.Condition) bool {
	for _, c := range conds {
		if !matchCondition(row[c.Column], c) {
			return false
		}
	}
	return true
}

func matchCondition(value any, c types.Condition) bool {
	switch c.Op {
	case types.CmpEq:
		return Equal(value, c.Value)
	case types.CmpNeq:
		return !Equal(value, c.Value)
	case types.CmpGt:
		ok, cmp := numericCompare(value, c.Value)
		return ok && cmp > 0
	case types.CmpGte:
		ok, cmp := numericCompare(value, c.Value)
		return ok && cmp >= 0
	case types.CmpLt:
		ok, cmp := numericCompare(value, c.Value)
		return ok && cmp < 0
	case types.CmpLte:
		ok, cmp := numericCompare(value, c.Value)
		return ok && cmp <= 0
	case types.CmpContains:
		return contains(value, c.Value)
	case types.CmpIn:
		return in(value, c.Value)
	default:
		return false
	}
}

// Equal compares at the value level, not the representation level:
// 1, int64(1), 1.0, and "1" are all equal to each other. Two nils are
// equal; nil never equals a non-nil value. Values that are not mutually
// numeric fall back to string comparison.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr == nil && berr == nil {
		return af == bf
	}
	as, aerr := cast.ToStringE(a)
	bs, berr := cast.ToStringE(b)
	if aerr != nil || berr != nil {
		return false
	}
	return as == bs
}

// numericCompare coerces both operands to float64. The bool result is
// false when either coercion fails.
func numericCompare(a, b any) (bool, int) {
	af, err := cast.ToFloat64E(a)
	if err != nil {
		return false, 0
	}
	bf, err := cast.ToFloat64E(b)
	if err != nil {
		return false, 0
	}
	switch {
	case af < bf:
		return true, -1
	case af > bf:
		return true, 1
	default:
		return true, 0
	}
}

// contains performs a case-insensitive substring match on the string
// representations of both operands.
func contains(value, sub any) bool {
	vs, err := cast.ToStringE(value)
	if err != nil {
		return false
	}
	ss, err := cast.ToStringE(sub)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(vs), strings.ToLower(ss))
}

// in tests membership of the value in the condition's candidate list,
// using loose equality per element.
func in(value, list any) bool {
	candidates, err := cast.ToSliceE(list)
	if err != nil {
		return false
	}
	for _, candidate := range candidates {
		if Equal(value, candidate) {
			return true
		}
	}
	return false
}

// Compare orders two cell values for sorting: numerically when both
// operands coerce to numbers, by string representation otherwise. Nil
// sorts before every non-nil value.
func Compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if ok, cmp := numericCompare(a, b); ok {
		return cmp
	}
	as := cast.ToString(a)
	bs := cast.ToString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
