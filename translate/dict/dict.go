// Package dict adapts string-keyed, string-valued dictionaries
// (map[string]string) to the engine's Translator contract. Typed casts use
// the dictionary's native string parsing; nested arrays and objects do not
// exist in this representation and never cast.
package dict

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	crucible "github.com/schema-forge/crucible"
)

// Translator is the dictionary implementation of crucible.Translator.
type Translator struct{}

// New returns the dictionary translator.
func New() Translator { return Translator{} }

var _ crucible.Translator = Translator{}

func (Translator) Cast(coll any, key string, tag crucible.TypeTag) (any, bool) {
	m, ok := coll.(map[string]string)
	if !ok {
		return nil, false
	}
	s, ok := m[key]
	if !ok {
		return nil, false
	}
	switch tag {
	case crucible.TypeString:
		return s, true
	case crucible.TypeInt:
		i, err := strconv.ParseInt(s, 10, 64)
		return i, err == nil
	case crucible.TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case crucible.TypeBool:
		b, err := strconv.ParseBool(s)
		return b, err == nil
	case crucible.TypeDateTime:
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	return nil, false
}

func (Translator) IsEmptyOrNull(coll any, key string) bool {
	m, ok := coll.(map[string]string)
	if !ok {
		return true
	}
	s, ok := m[key]
	return !ok || s == ""
}

func (Translator) ContainsKey(coll any, key string) bool {
	m, ok := coll.(map[string]string)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

func (Translator) Keys(coll any) ([]string, error) {
	m, ok := coll.(map[string]string)
	if !ok {
		return nil, crucible.ErrKeysUnsupported
	}
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks, nil
}

// Insert stringifies the value into the dictionary in place and returns it.
func (Translator) Insert(coll any, key string, value any) (any, error) {
	m, ok := coll.(map[string]string)
	if !ok {
		return coll, crucible.ErrKeysUnsupported
	}
	s, err := stringify(value)
	if err != nil {
		return coll, err
	}
	m[key] = s
	return m, nil
}

func (Translator) DisplayString(coll any, key string) string {
	m, ok := coll.(map[string]string)
	if !ok {
		return ""
	}
	return m[key]
}

func (Translator) TypeDisplayName(tag crucible.TypeTag) string {
	switch tag {
	case crucible.TypeString:
		return "text"
	case crucible.TypeInt:
		return "integer text"
	case crucible.TypeFloat:
		return "decimal text"
	case crucible.TypeBool:
		return "boolean text"
	case crucible.TypeDateTime:
		return "date-time text"
	case crucible.TypeList:
		return "array"
	case crucible.TypeObject:
		return "object"
	}
	return "unknown"
}

func stringify(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano), nil
	default:
		return "", fmt.Errorf("dict: cannot store %T in a string dictionary", v)
	}
}
