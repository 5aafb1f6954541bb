package crucible

import (
	"errors"
	"fmt"
)

// ConstraintKind separates the two evaluation classes a Field knows about,
// plus the nested-schema recursion point.
type ConstraintKind int

const (
	// KindStandard constraints receive the cast, typed value.
	KindStandard ConstraintKind = iota
	// KindFormat constraints receive the value's display string instead of
	// its typed form (date-layout checks and similar).
	KindFormat
	// KindSchema marks an ApplySchema constraint; the engine validates the
	// nested collection with the enclosing run's translator.
	KindSchema
)

// CheckFunc is a single validation rule body. It must be pure with respect to
// its inputs and must not mutate v; constraint values are shared across
// schemas and across concurrent runs.
type CheckFunc[T any] func(v T, fieldName string) ErrorList

// Constraint is one named, reusable validation rule bound to a concrete value
// type. The descriptor exists only so a Schema can render itself into a
// self-describing document; it never influences the check. Immutable once
// built.
type Constraint[T any] struct {
	name       string
	descriptor any
	kind       ConstraintKind
	check      CheckFunc[T]
	schema     *Schema
	err        error
}

// NewConstraint builds a standard constraint. Empty names, empty descriptors,
// and nil check functions are usage errors; they are carried on the returned
// value and surface when the constraint is attached to a Field at build time.
func NewConstraint[T any](name string, descriptor any, check CheckFunc[T]) Constraint[T] {
	c := Constraint[T]{name: name, descriptor: descriptor, kind: KindStandard, check: check}
	c.err = validateConstraint(name, descriptor, check == nil)
	return c
}

// NewFormatConstraint builds a constraint evaluated against the value's
// display string rather than its typed form.
func NewFormatConstraint(name string, descriptor any, check CheckFunc[string]) Constraint[string] {
	c := NewConstraint(name, descriptor, check)
	c.kind = KindFormat
	return c
}

// FailedConstraint carries a construction failure from a constraint
// constructor so it surfaces at schema-build time. Library constructors use
// this for malformed inputs (inverted ranges, empty allow-lists, bad
// patterns).
func FailedConstraint[T any](name string, err error) Constraint[T] {
	if err == nil {
		err = errors.New("crucible: constraint construction failed")
	}
	return Constraint[T]{name: name, err: fmt.Errorf("constraint %q: %w", name, err)}
}

// ApplySchema nests a whole sub-Schema as a constraint on an object-typed
// field. During validation the nested schema runs against the sub-collection
// with the outer field's name threaded through for error attribution.
func ApplySchema(sub *Schema) Constraint[any] {
	c := Constraint[any]{name: "apply_schema", kind: KindSchema, schema: sub}
	if sub == nil {
		c.err = errors.New(`constraint "apply_schema": nil schema`)
	}
	return c
}

// Name returns the constraint's name.
func (c Constraint[T]) Name() string { return c.name }

// Descriptor returns the serializable descriptor used for schema
// self-description.
func (c Constraint[T]) Descriptor() any { return c.descriptor }

// Kind returns the evaluation class.
func (c Constraint[T]) Kind() ConstraintKind { return c.kind }

// Err reports the construction error carried by the constraint, if any.
func (c Constraint[T]) Err() error { return c.err }

// Check runs the constraint's rule against a typed value. A constraint built
// with bad arguments reports its construction error here. ApplySchema
// constraints need a translator and cannot run through Check; doing so is a
// usage error reported in the result.
func (c Constraint[T]) Check(v T, fieldName string) ErrorList {
	if c.err != nil {
		return ErrorList{fatalf("field %q: %v", fieldName, c.err)}
	}
	if c.kind == KindSchema {
		return ErrorList{fatalf("field %q: apply_schema constraint requires a translator", fieldName)}
	}
	if c.check == nil {
		return nil
	}
	return c.check(v, fieldName)
}

func validateConstraint(name string, descriptor any, nilCheck bool) error {
	if name == "" {
		return errors.New("crucible: constraint name must not be empty")
	}
	if descriptor == nil {
		return fmt.Errorf("constraint %q: descriptor must not be empty", name)
	}
	if s, ok := descriptor.(string); ok && s == "" {
		return fmt.Errorf("constraint %q: descriptor must not be empty", name)
	}
	if nilCheck {
		return fmt.Errorf("constraint %q: check function must not be nil", name)
	}
	return nil
}

// constraintRunner is the type-erased form a Field stores. Candidate
// constructors erase typed constraints so a single Field can hold an ordered
// list of (type tag, constraint set) pairs without one generic Field type per
// arity.
type constraintRunner struct {
	name       string
	descriptor any
	kind       ConstraintKind
	schema     *Schema
	err        error
	run        func(v any, fieldName string, tr Translator) ErrorList
}

func eraseConstraint[T any](c Constraint[T]) constraintRunner {
	r := constraintRunner{
		name:       c.name,
		descriptor: c.descriptor,
		kind:       c.kind,
		schema:     c.schema,
		err:        c.err,
	}
	check := c.check
	sub := c.schema
	r.run = func(v any, fieldName string, tr Translator) ErrorList {
		if sub != nil {
			_, errs := sub.Validate(v, tr, WithContext(fieldName))
			return errs
		}
		tv, ok := v.(T)
		if !ok {
			return ErrorList{fatalf("field %q: internal type mismatch in constraint %q", fieldName, r.name)}
		}
		if check == nil {
			return nil
		}
		return check(tv, fieldName)
	}
	return r
}
