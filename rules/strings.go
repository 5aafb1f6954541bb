package rules

import (
	"fmt"
	"regexp"
	"strings"

	crucible "github.com/schema-forge/crucible"
)

// OneOf requires the value to be a member of the allow-list. An empty
// allow-list fails at construction time.
func OneOf(allowed ...string) crucible.Constraint[string] {
	if len(allowed) == 0 {
		return crucible.FailedConstraint[string]("one_of", fmt.Errorf("allow-list must not be empty"))
	}
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return crucible.NewConstraint[string]("one_of", allowed, func(v, field string) crucible.ErrorList {
		if _, ok := set[v]; !ok {
			return fatal("field %q: value %q is not one of the valid values %q", field, v, allowed)
		}
		return nil
	})
}

// MatchAnyPattern requires the whole value to match at least one of the
// patterns. Patterns are anchored to the full string; a pattern that does not
// compile fails at construction time.
func MatchAnyPattern(patterns ...string) crucible.Constraint[string] {
	if len(patterns) == 0 {
		return crucible.FailedConstraint[string]("patterns", fmt.Errorf("at least one pattern is required"))
	}
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")$")
		if err != nil {
			return crucible.FailedConstraint[string]("patterns", fmt.Errorf("pattern %q: %w", p, err))
		}
		res[i] = re
	}
	return crucible.NewConstraint[string]("patterns", patterns, func(v, field string) crucible.ErrorList {
		for _, re := range res {
			if re.MatchString(v) {
				return nil
			}
		}
		return fatal("field %q: value %q matches none of the patterns %q", field, v, patterns)
	})
}

// LengthBetween requires min <= len(value) <= max. Negative or inverted
// bounds fail at construction time.
func LengthBetween(min, max int) crucible.Constraint[string] {
	if min < 0 || max < min {
		return crucible.FailedConstraint[string]("length", fmt.Errorf("invalid length bounds [%d, %d]", min, max))
	}
	return crucible.NewConstraint[string]("length", []int{min, max}, func(v, field string) crucible.ErrorList {
		n := len(v)
		if n < min || n > max {
			return fatal("field %q: length %d is outside the bounds [%d, %d]", field, n, min, max)
		}
		return nil
	})
}

// ForbidSubstrings rejects values containing any of the listed substrings.
// An empty set, or an empty member, fails at construction time.
func ForbidSubstrings(subs ...string) crucible.Constraint[string] {
	if len(subs) == 0 {
		return crucible.FailedConstraint[string]("forbidden", fmt.Errorf("forbidden-substring set must not be empty"))
	}
	for _, sub := range subs {
		if sub == "" {
			return crucible.FailedConstraint[string]("forbidden", fmt.Errorf("forbidden substring must not be empty"))
		}
	}
	return crucible.NewConstraint[string]("forbidden", subs, func(v, field string) crucible.ErrorList {
		var found []string
		for _, sub := range subs {
			if strings.Contains(v, sub) {
				found = append(found, sub)
			}
		}
		if len(found) > 0 {
			return fatal("field %q: value contains forbidden substrings %q", field, found)
		}
		return nil
	})
}
