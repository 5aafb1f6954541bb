// Package rules ships the prebuilt constraint library: numeric bounds and
// domains, string membership/pattern/length/forbidden-substring checks,
// collection counts, format (display-string) checks, and the MatchAny
// combinator. Malformed constructor inputs are usage errors surfaced at
// schema-build time, not at validation time.
package rules

import (
	"fmt"

	crucible "github.com/schema-forge/crucible"
)

// Number covers the numeric candidate types of the engine.
type Number interface {
	~int64 | ~float64
}

// Min requires value >= bound.
func Min[T Number](bound T) crucible.Constraint[T] {
	return crucible.NewConstraint[T]("minimum", bound, func(v T, field string) crucible.ErrorList {
		if v < bound {
			return fatal("field %q: value %v is below the minimum %v", field, v, bound)
		}
		return nil
	})
}

// Max requires value <= bound.
func Max[T Number](bound T) crucible.Constraint[T] {
	return crucible.NewConstraint[T]("maximum", bound, func(v T, field string) crucible.ErrorList {
		if v > bound {
			return fatal("field %q: value %v is above the maximum %v", field, v, bound)
		}
		return nil
	})
}

// InRange requires lower <= value <= upper. An inverted range fails at
// construction time.
func InRange[T Number](lower, upper T) crucible.Constraint[T] {
	if lower > upper {
		return crucible.FailedConstraint[T]("range", fmt.Errorf("lower bound %v exceeds upper bound %v", lower, upper))
	}
	return crucible.NewConstraint[T]("range", []T{lower, upper}, func(v T, field string) crucible.ErrorList {
		if v < lower || v > upper {
			return fatal("field %q: value %v is outside the range [%v, %v]", field, v, lower, upper)
		}
		return nil
	})
}

// InDomains requires the value to fall inside at least one of the inclusive
// ranges. An empty range set or an inverted member range fails at
// construction time.
func InDomains[T Number](ranges ...[2]T) crucible.Constraint[T] {
	if len(ranges) == 0 {
		return crucible.FailedConstraint[T]("domains", fmt.Errorf("at least one range is required"))
	}
	for _, r := range ranges {
		if r[0] > r[1] {
			return crucible.FailedConstraint[T]("domains", fmt.Errorf("lower bound %v exceeds upper bound %v", r[0], r[1]))
		}
	}
	descriptor := make([][]T, len(ranges))
	for i, r := range ranges {
		descriptor[i] = []T{r[0], r[1]}
	}
	return crucible.NewConstraint[T]("domains", descriptor, func(v T, field string) crucible.ErrorList {
		for _, r := range ranges {
			if v >= r[0] && v <= r[1] {
				return nil
			}
		}
		return fatal("field %q: value %v falls inside none of the allowed ranges %v", field, v, descriptor)
	})
}

func fatal(format string, args ...any) crucible.ErrorList {
	return crucible.ErrorList{{Message: fmt.Sprintf(format, args...), Severity: crucible.SeverityFatal}}
}
