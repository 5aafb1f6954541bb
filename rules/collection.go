package rules

import (
	"fmt"

	crucible "github.com/schema-forge/crucible"
)

// CountBetween requires min <= element count <= max on an array value.
// Negative or inverted bounds fail at construction time.
func CountBetween(min, max int) crucible.Constraint[[]any] {
	if min < 0 || max < min {
		return crucible.FailedConstraint[[]any]("count", fmt.Errorf("invalid count bounds [%d, %d]", min, max))
	}
	return crucible.NewConstraint[[]any]("count", []int{min, max}, func(v []any, field string) crucible.ErrorList {
		n := len(v)
		if n < min || n > max {
			return fatal("field %q: element count %d is outside the bounds [%d, %d]", field, n, min, max)
		}
		return nil
	})
}
