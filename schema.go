package crucible

import (
	"errors"
	"fmt"

	"github.com/schema-forge/crucible/describe"
	"github.com/schema-forge/crucible/i18n"
)

// Schema is an insertion-ordered set of uniquely named Fields, the unit of
// validation. The Schema itself carries no per-run state: Validate returns a
// fresh ErrorList each call, so one Schema can serve repeated and concurrent
// runs as long as each run gets its own mutable collection.
type Schema struct {
	fields []*Field
	index  map[string]int
}

// NewSchema builds a Schema from fields. Duplicate field names are usage
// errors.
func NewSchema(fields ...*Field) (*Schema, error) {
	s := &Schema{index: map[string]int{}}
	for _, f := range fields {
		if err := s.AddField(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(fields ...*Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// AddField appends a field. Field names are the schema-unique key; inserting
// a duplicate is a usage error.
func (s *Schema) AddField(f *Field) error {
	if f == nil {
		return errors.New("crucible: nil field")
	}
	if s.index == nil {
		s.index = map[string]int{}
	}
	if _, dup := s.index[f.name]; dup {
		return fmt.Errorf("crucible: duplicate field %q", f.name)
	}
	s.index[f.name] = len(s.fields)
	s.fields = append(s.fields, f)
	return nil
}

// RemoveField deletes a field by name and reports whether it was present.
func (s *Schema) RemoveField(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.fields = append(s.fields[:i], s.fields[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.fields); j++ {
		s.index[s.fields[j].name] = j
	}
	return true
}

// Field returns the field registered under name.
func (s *Schema) Field(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []*Field {
	return append([]*Field(nil), s.fields...)
}

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

type validateOptions struct {
	contextName       string
	allowUnrecognized bool
}

// ValidateOption adjusts a single validation run.
type ValidateOption func(*validateOptions)

// WithContext names the run; when the run produces any Fatal entry, one
// summary entry is appended so results of nested schema applications stay
// locatable in a flat log.
func WithContext(name string) ValidateOption {
	return func(o *validateOptions) { o.contextName = name }
}

// AllowUnrecognized downgrades unrecognized-key findings from Fatal to Info.
func AllowUnrecognized() ValidateOption {
	return func(o *validateOptions) { o.allowUnrecognized = true }
}

// Validate walks the declared fields over the collection. Absent required
// fields are Fatal, absent defaulted fields have their default inserted
// through the translator, and absent plain optional fields are noted as Info.
// Present fields dispatch to Field.Validate, with one Info remediation entry
// repeating the field's description whenever the field fails.
//
// After the per-field pass every key actually present in the collection that
// belongs to no declared field is flagged, Fatal unless AllowUnrecognized was
// given: a misspelled optional field must surface immediately instead of
// silently vanishing.
//
// The returned collection reflects default-value insertion and must be used
// in place of the argument; in-place translators mutate the caller's input as
// a documented side effect. Callers must not validate the same mutable
// collection concurrently.
func (s *Schema) Validate(coll any, tr Translator, opts ...ValidateOption) (any, ErrorList) {
	var o validateOptions
	for _, opt := range opts {
		opt(&o)
	}
	var errs ErrorList
	cur := coll
	for _, f := range s.fields {
		if !tr.ContainsKey(cur, f.name) {
			switch {
			case f.required:
				errs = AppendErrors(errs, fatalf("field %q: %s (%s)", f.name, i18n.T(i18n.CodeRequired, nil), f.description))
			case f.hasDefault:
				nc, err := tr.Insert(cur, f.name, f.defaultValue)
				if err != nil {
					errs = AppendErrors(errs, fatalf("field %q: %s: %v", f.name, i18n.T(i18n.CodeInsertFailure, nil), err))
					continue
				}
				cur = nc
			default:
				errs = AppendErrors(errs, infof("field %q: %s", f.name, i18n.T(i18n.CodeMissingOptional, nil)))
			}
			continue
		}
		fe := f.Validate(cur, tr)
		if len(fe) == 0 {
			continue
		}
		errs = AppendErrors(errs, fe...)
		if AnyFatal(fe) && f.description != "" {
			errs = AppendErrors(errs, infof("field %q: %s", f.name, f.description))
		}
	}
	keys, err := tr.Keys(cur)
	switch {
	case err == nil:
		for _, k := range keys {
			if _, known := s.index[k]; known {
				continue
			}
			if o.allowUnrecognized {
				errs = AppendErrors(errs, infof("%s %q", i18n.T(i18n.CodeUnknownKey, nil), k))
			} else {
				errs = AppendErrors(errs, fatalf("%s %q", i18n.T(i18n.CodeUnknownKey, nil), k))
			}
		}
	case errors.Is(err, ErrKeysUnsupported):
		errs = AppendErrors(errs, warnf("unrecognized-key detection skipped: %v", err))
	default:
		errs = AppendErrors(errs, fatalf("cannot enumerate collection keys: %v", err))
	}
	if o.contextName != "" && AnyFatal(errs) {
		errs = AppendErrors(errs, fatalf("%s for %q", i18n.T(i18n.CodeContextFailed, nil), o.contextName))
	}
	return cur, errs
}

// Template returns a fill-in-the-blanks collection mapping every declared
// field name to its description, optional fields prefixed "Optional - ".
// Pure; no validation side effects.
func (s *Schema) Template() map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		d := f.description
		if !f.required {
			d = "Optional - " + d
		}
		out[f.name] = d
	}
	return out
}

// Describe renders the schema into its self-description document: per field,
// one entry per candidate type carrying that type's constraint descriptors.
// ApplySchema constraints embed the nested schema's own document.
func (s *Schema) Describe() describe.Document {
	var doc describe.Document
	for _, f := range s.fields {
		fd := describe.FieldDoc{Name: f.name, Description: f.description}
		for _, ct := range f.candidates {
			tc := describe.TypeConstraints{Type: ct.tag.String()}
			runners := make([]constraintRunner, 0, len(ct.standard)+len(ct.format))
			runners = append(runners, ct.standard...)
			runners = append(runners, ct.format...)
			for _, r := range runners {
				d := r.descriptor
				if r.kind == KindSchema && r.schema != nil {
					d = r.schema.Describe()
				}
				tc.Rules = append(tc.Rules, describe.Rule{Name: r.name, Descriptor: d})
			}
			fd.Constraints = append(fd.Constraints, tc)
		}
		doc.Fields = append(doc.Fields, fd)
	}
	return doc
}
