package rules

import (
	"fmt"

	crucible "github.com/schema-forge/crucible"
)

// MatchAny combines several constraints of the same value type; it passes as
// soon as any member passes. When every member fails, it reports the branch
// with the fewest findings. Nested ApplySchema constraints are not allowed as
// members, and a member carrying a construction error or an empty member set
// fails at construction time.
func MatchAny[T any](cs ...crucible.Constraint[T]) crucible.Constraint[T] {
	if len(cs) == 0 {
		return crucible.FailedConstraint[T]("match_any", fmt.Errorf("at least one constraint is required"))
	}
	descriptor := make([]map[string]any, len(cs))
	for i, c := range cs {
		if err := c.Err(); err != nil {
			return crucible.FailedConstraint[T]("match_any", err)
		}
		if c.Kind() == crucible.KindSchema {
			return crucible.FailedConstraint[T]("match_any", fmt.Errorf("apply_schema cannot be a member"))
		}
		descriptor[i] = map[string]any{c.Name(): c.Descriptor()}
	}
	return crucible.NewConstraint[T]("match_any", descriptor, func(v T, field string) crucible.ErrorList {
		var best crucible.ErrorList
		for _, c := range cs {
			errs := c.Check(v, field)
			if !crucible.AnyFatal(errs) {
				return nil
			}
			if best == nil || len(errs) < len(best) {
				best = errs
			}
		}
		return best
	})
}
