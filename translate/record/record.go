// Package record adapts native Go records to the engine's Translator
// contract through explicitly registered typed accessors, built once per
// record type. No runtime reflection is involved: each field name maps to a
// getter/setter pair, and an optional-style accessor models absence through a
// nil pointer.
package record

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	crucible "github.com/schema-forge/crucible"
)

// ErrReadOnly is returned by Insert for fields registered without a setter.
var ErrReadOnly = errors.New("record: field is read-only")

// Accessor is one registered field of a record: how to read it, whether it
// counts as present, and optionally how to write it.
type Accessor struct {
	get func(rec any) (any, bool)
	set func(rec any, v any) error
}

// Access registers an always-present field of *R through typed get/set
// functions. Pass a nil set for read-only fields.
func Access[R any, V any](get func(*R) V, set func(*R, V)) Accessor {
	a := Accessor{
		get: func(rec any) (any, bool) {
			r, ok := rec.(*R)
			if !ok {
				return nil, false
			}
			return get(r), true
		},
	}
	if set != nil {
		a.set = func(rec any, v any) error {
			r, ok := rec.(*R)
			if !ok {
				return fmt.Errorf("record: expected %T, got %T", (*R)(nil), rec)
			}
			tv, ok := v.(V)
			if !ok {
				var want V
				return fmt.Errorf("record: cannot store %T in a %T field", v, want)
			}
			set(r, tv)
			return nil
		}
	}
	return a
}

// AccessPtr registers an optional field of *R backed by a pointer; a nil
// pointer means the field is absent. Insert sets the pointer.
func AccessPtr[R any, V any](get func(*R) *V, set func(*R, *V)) Accessor {
	a := Accessor{
		get: func(rec any) (any, bool) {
			r, ok := rec.(*R)
			if !ok {
				return nil, false
			}
			p := get(r)
			if p == nil {
				return nil, false
			}
			return *p, true
		},
	}
	if set != nil {
		a.set = func(rec any, v any) error {
			r, ok := rec.(*R)
			if !ok {
				return fmt.Errorf("record: expected %T, got %T", (*R)(nil), rec)
			}
			tv, ok := v.(V)
			if !ok {
				var want V
				return fmt.Errorf("record: cannot store %T in a %T field", v, want)
			}
			set(r, &tv)
			return nil
		}
	}
	return a
}

// Translator validates one record type through its registered accessors.
// Registration happens once at schema-construction time; afterwards the
// translator is read-only and safe to share.
type Translator struct {
	accessors map[string]Accessor
	order     []string
}

// NewTranslator returns an empty record translator.
func NewTranslator() *Translator {
	return &Translator{accessors: map[string]Accessor{}}
}

var _ crucible.Translator = (*Translator)(nil)

// Register binds a field name to its accessor. Duplicate and empty names are
// usage errors.
func (t *Translator) Register(name string, a Accessor) error {
	if name == "" {
		return errors.New("record: accessor name must not be empty")
	}
	if a.get == nil {
		return fmt.Errorf("record: accessor %q has no getter", name)
	}
	if _, dup := t.accessors[name]; dup {
		return fmt.Errorf("record: accessor %q already registered", name)
	}
	t.accessors[name] = a
	t.order = append(t.order, name)
	return nil
}

// MustRegister is like Register but panics on error and chains.
func (t *Translator) MustRegister(name string, a Accessor) *Translator {
	if err := t.Register(name, a); err != nil {
		panic(err)
	}
	return t
}

func (t *Translator) Cast(coll any, key string, tag crucible.TypeTag) (any, bool) {
	a, ok := t.accessors[key]
	if !ok {
		return nil, false
	}
	v, ok := a.get(coll)
	if !ok {
		return nil, false
	}
	return castValue(v, tag)
}

func castValue(v any, tag crucible.TypeTag) (any, bool) {
	switch tag {
	case crucible.TypeString:
		s, ok := v.(string)
		return s, ok
	case crucible.TypeInt:
		switch n := v.(type) {
		case int64:
			return n, true
		case int:
			return int64(n), true
		case int32:
			return int64(n), true
		}
		return nil, false
	case crucible.TypeFloat:
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		}
		return nil, false
	case crucible.TypeBool:
		b, ok := v.(bool)
		return b, ok
	case crucible.TypeDateTime:
		t, ok := v.(time.Time)
		return t, ok
	case crucible.TypeList:
		l, ok := v.([]any)
		return l, ok
	case crucible.TypeObject:
		o, ok := v.(map[string]any)
		return o, ok
	}
	return nil, false
}

func (t *Translator) IsEmptyOrNull(coll any, key string) bool {
	a, ok := t.accessors[key]
	if !ok {
		return true
	}
	v, ok := a.get(coll)
	if !ok || v == nil {
		return true
	}
	// Nil maps and slices box into non-nil interfaces; they still read as null.
	switch x := v.(type) {
	case string:
		return x == ""
	case map[string]any:
		return x == nil
	case []any:
		return x == nil
	}
	return false
}

func (t *Translator) ContainsKey(coll any, key string) bool {
	a, ok := t.accessors[key]
	if !ok {
		return false
	}
	_, ok = a.get(coll)
	return ok
}

// Keys lists the registered field names in registration order.
func (t *Translator) Keys(coll any) ([]string, error) {
	return append([]string(nil), t.order...), nil
}

// Insert writes through the field's setter. The record mutates in place; the
// same record is returned.
func (t *Translator) Insert(coll any, key string, value any) (any, error) {
	a, ok := t.accessors[key]
	if !ok {
		return coll, fmt.Errorf("record: no accessor registered for %q", key)
	}
	if a.set == nil {
		return coll, fmt.Errorf("%w: %q", ErrReadOnly, key)
	}
	if err := a.set(coll, value); err != nil {
		return coll, err
	}
	return coll, nil
}

func (t *Translator) DisplayString(coll any, key string) string {
	a, ok := t.accessors[key]
	if !ok {
		return ""
	}
	v, ok := a.get(coll)
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}

func (t *Translator) TypeDisplayName(tag crucible.TypeTag) string {
	switch tag {
	case crucible.TypeString:
		return "string"
	case crucible.TypeInt:
		return "int64"
	case crucible.TypeFloat:
		return "float64"
	case crucible.TypeBool:
		return "bool"
	case crucible.TypeDateTime:
		return "time.Time"
	case crucible.TypeList:
		return "[]any"
	case crucible.TypeObject:
		return "map[string]any"
	}
	return "unknown"
}
