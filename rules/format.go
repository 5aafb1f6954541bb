package rules

import (
	"fmt"
	"time"

	crucible "github.com/schema-forge/crucible"
)

// DateLayout is a format constraint: the value's display string must parse
// with at least one of the Go reference layouts. An empty layout set fails at
// construction time.
func DateLayout(layouts ...string) crucible.Constraint[string] {
	if len(layouts) == 0 {
		return crucible.FailedConstraint[string]("date_format", fmt.Errorf("at least one layout is required"))
	}
	for _, l := range layouts {
		if l == "" {
			return crucible.FailedConstraint[string]("date_format", fmt.Errorf("layout must not be empty"))
		}
	}
	return crucible.NewFormatConstraint("date_format", layouts, func(v, field string) crucible.ErrorList {
		for _, l := range layouts {
			if _, err := time.Parse(l, v); err == nil {
				return nil
			}
		}
		return fatal("field %q: value %q matches none of the date layouts %q", field, v, layouts)
	})
}
