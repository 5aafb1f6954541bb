package crucible

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/schema-forge/crucible/i18n"
)

// CandidateType is one (type tag, constraint set) pair of a Field, with the
// constraints already split into standard and format classes.
type CandidateType struct {
	tag      TypeTag
	standard []constraintRunner
	format   []constraintRunner
	err      error
}

func newCandidate[T any](tag TypeTag, cs []Constraint[T]) CandidateType {
	ct := CandidateType{tag: tag}
	for _, c := range cs {
		r := eraseConstraint(c)
		if r.err != nil && ct.err == nil {
			ct.err = r.err
		}
		if r.kind == KindFormat {
			ct.format = append(ct.format, r)
			continue
		}
		ct.standard = append(ct.standard, r)
	}
	return ct
}

// String declares a string candidate type with its constraints.
func String(cs ...Constraint[string]) CandidateType { return newCandidate(TypeString, cs) }

// Int declares an integer candidate type with its constraints.
func Int(cs ...Constraint[int64]) CandidateType { return newCandidate(TypeInt, cs) }

// Float declares a floating-point candidate type with its constraints.
func Float(cs ...Constraint[float64]) CandidateType { return newCandidate(TypeFloat, cs) }

// Bool declares a boolean candidate type with its constraints.
func Bool(cs ...Constraint[bool]) CandidateType { return newCandidate(TypeBool, cs) }

// DateTime declares a datetime candidate type with its constraints.
func DateTime(cs ...Constraint[time.Time]) CandidateType { return newCandidate(TypeDateTime, cs) }

// List declares an array candidate type with its constraints.
func List(cs ...Constraint[[]any]) CandidateType { return newCandidate(TypeList, cs) }

// Object declares a nested-collection candidate type with its constraints,
// typically a single ApplySchema.
func Object(cs ...Constraint[any]) CandidateType { return newCandidate(TypeObject, cs) }

// Format attaches constraints evaluated against the value's display string
// instead of its cast form, regardless of the candidate's own type.
func (ct CandidateType) Format(fs ...Constraint[string]) CandidateType {
	for _, c := range fs {
		r := eraseConstraint(c)
		r.kind = KindFormat
		if r.err != nil && ct.err == nil {
			ct.err = r.err
		}
		ct.format = append(ct.format, r)
	}
	return ct
}

// Field is a single named, typed, constrained entry expected in a validated
// collection. Candidate types are tried strictly in declaration order and the
// first successful cast wins; later candidates are never consulted, even when
// the value would also satisfy them. Immutable once built; Validate returns
// its findings instead of accumulating them on the Field, so one Field can
// serve repeated and concurrent runs.
type Field struct {
	name         string
	description  string
	required     bool
	allowNull    bool
	candidates   []CandidateType
	defaultValue any
	hasDefault   bool
}

// FieldBuilder assembles a Field. Usage errors (empty name, duplicate
// candidate types, malformed constraints, a default on a required field) are
// reported by Build, before any user input is ever processed.
type FieldBuilder struct {
	f Field
}

// NewField starts a Field with its schema-unique name, a human-facing
// description used as remediation text, and at least one candidate type.
func NewField(name, description string, ct CandidateType, more ...CandidateType) *FieldBuilder {
	b := &FieldBuilder{f: Field{name: name, description: description}}
	b.f.candidates = append(b.f.candidates, ct)
	b.f.candidates = append(b.f.candidates, more...)
	return b
}

// Required marks the field as mandatory.
func (b *FieldBuilder) Required() *FieldBuilder {
	b.f.required = true
	return b
}

// AllowNull downgrades the empty-or-null finding from Fatal to Warning.
func (b *FieldBuilder) AllowNull() *FieldBuilder {
	b.f.allowNull = true
	return b
}

// Default registers a value injected when the field is absent. The value must
// be typed to the first candidate type, and a defaulted field cannot also be
// required.
func (b *FieldBuilder) Default(v any) *FieldBuilder {
	b.f.defaultValue = v
	b.f.hasDefault = true
	return b
}

// Build validates the builder and returns the immutable Field.
func (b *FieldBuilder) Build() (*Field, error) {
	if b.f.name == "" {
		return nil, errors.New("crucible: field name must not be empty")
	}
	seen := map[TypeTag]struct{}{}
	for _, ct := range b.f.candidates {
		if ct.err != nil {
			return nil, fmt.Errorf("field %q: %w", b.f.name, ct.err)
		}
		if _, dup := seen[ct.tag]; dup {
			return nil, fmt.Errorf("field %q: duplicate candidate type %s", b.f.name, ct.tag)
		}
		seen[ct.tag] = struct{}{}
	}
	if b.f.hasDefault {
		if b.f.required {
			return nil, fmt.Errorf("field %q: a defaulted field cannot be required", b.f.name)
		}
		if err := checkDefaultType(b.f.candidates[0].tag, b.f.defaultValue); err != nil {
			return nil, fmt.Errorf("field %q: %w", b.f.name, err)
		}
	}
	f := b.f
	f.candidates = append([]CandidateType(nil), b.f.candidates...)
	return &f, nil
}

// MustBuild is like Build but panics on error.
func (b *FieldBuilder) MustBuild() *Field {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}

// checkDefaultType verifies the default is typed to the first candidate type.
func checkDefaultType(tag TypeTag, v any) error {
	ok := false
	switch tag {
	case TypeString:
		_, ok = v.(string)
	case TypeInt:
		_, ok = v.(int64)
	case TypeFloat:
		_, ok = v.(float64)
	case TypeBool:
		_, ok = v.(bool)
	case TypeDateTime:
		_, ok = v.(time.Time)
	case TypeList:
		_, ok = v.([]any)
	case TypeObject:
		ok = v != nil
	}
	if !ok {
		return fmt.Errorf("default value %v is not typed to the first candidate type %s", v, tag)
	}
	return nil
}

// Name returns the field's schema-unique name. Two Fields are equal iff their
// names are equal.
func (f *Field) Name() string { return f.name }

// Description returns the human-facing description.
func (f *Field) Description() string { return f.description }

// IsRequired reports whether the field is mandatory.
func (f *Field) IsRequired() bool { return f.required }

// AllowsNull reports whether empty-or-null values are tolerated.
func (f *Field) AllowsNull() bool { return f.allowNull }

// DefaultValue returns the registered default and whether one is set.
func (f *Field) DefaultValue() (any, bool) { return f.defaultValue, f.hasDefault }

// Types returns the candidate type tags in declaration order.
func (f *Field) Types() []TypeTag {
	tags := make([]TypeTag, len(f.candidates))
	for i, ct := range f.candidates {
		tags[i] = ct.tag
	}
	return tags
}

// AddType returns a new Field with one additional candidate type appended
// after the existing ones. The receiver is left untouched; adding a type that
// is already declared is a usage error. Heterogeneous fields are built up
// incrementally this way, for example while reassembling a schema from its
// self-description.
func (f *Field) AddType(ct CandidateType) (*Field, error) {
	if ct.err != nil {
		return nil, fmt.Errorf("field %q: %w", f.name, ct.err)
	}
	for _, have := range f.candidates {
		if have.tag == ct.tag {
			return nil, fmt.Errorf("field %q: candidate type %s already declared", f.name, ct.tag)
		}
	}
	nf := *f
	nf.candidates = append(append([]CandidateType(nil), f.candidates...), ct)
	return &nf, nil
}

// Validate checks the value stored under the field's name in the collection.
// The empty-or-null probe runs first and short-circuits type dispatch; after
// it, candidate types are attempted in declaration order and the first
// successful cast receives the constraint run. When no candidate casts, a
// single Fatal entry names every attempted type.
func (f *Field) Validate(coll any, tr Translator) ErrorList {
	if tr.IsEmptyOrNull(coll, f.name) {
		if f.allowNull {
			return ErrorList{warnf("field %q: %s", f.name, i18n.T(i18n.CodeEmptyValue, nil))}
		}
		return ErrorList{fatalf("field %q: %s", f.name, i18n.T(i18n.CodeEmptyValue, nil))}
	}
	for _, ct := range f.candidates {
		v, ok := tr.Cast(coll, f.name, ct.tag)
		if !ok {
			continue
		}
		var errs ErrorList
		for _, r := range ct.standard {
			res := r.run(v, f.name, tr)
			if r.kind == KindSchema && AnyFatal(res) {
				res = AppendErrors(res, fatalf("field %q (%s): %s", f.name, f.description, i18n.T(i18n.CodeNestedInvalid, nil)))
			}
			errs = AppendErrors(errs, res...)
		}
		if len(ct.format) > 0 {
			s := tr.DisplayString(coll, f.name)
			for _, r := range ct.format {
				errs = AppendErrors(errs, r.run(s, f.name, tr)...)
			}
		}
		return errs
	}
	names := make([]string, len(f.candidates))
	for i, ct := range f.candidates {
		names[i] = tr.TypeDisplayName(ct.tag)
	}
	return ErrorList{fatalf("field %q: %s (tried %s)", f.name, i18n.T(i18n.CodeCastFailure, nil), strings.Join(names, ", "))}
}
