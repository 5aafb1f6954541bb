// Package jsontree adapts parsed JSON trees (map[string]any) to the engine's
// Translator contract. Trees decoded through Decode carry numbers as
// gojson.Number, which keeps the integer/float distinction intact until a
// field declares which one it wants.
package jsontree

import (
	"bytes"
	"sort"
	"strconv"
	"time"

	gojson "github.com/goccy/go-json"

	crucible "github.com/schema-forge/crucible"
)

// Translator is the JSON-tree implementation of crucible.Translator.
// Stateless; one value can serve every run.
type Translator struct{}

// New returns the JSON-tree translator.
func New() Translator { return Translator{} }

var _ crucible.Translator = Translator{}

// Decode parses raw JSON into a backing tree using goccy/go-json with number
// preservation.
func Decode(data []byte) (map[string]any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// Cast attempts the canonical value for tag. JSON has a single number type,
// so integral numbers cast to both integer and float; datetimes are RFC3339
// strings by JSON convention.
func (Translator) Cast(coll any, key string, tag crucible.TypeTag) (any, bool) {
	m, ok := coll.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	switch tag {
	case crucible.TypeString:
		s, ok := v.(string)
		return s, ok
	case crucible.TypeInt:
		switch n := v.(type) {
		case gojson.Number:
			i, err := n.Int64()
			return i, err == nil
		case int:
			return int64(n), true
		case int64:
			return n, true
		case float64:
			i := int64(n)
			return i, float64(i) == n
		}
		return nil, false
	case crucible.TypeFloat:
		switch n := v.(type) {
		case gojson.Number:
			f, err := n.Float64()
			return f, err == nil
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		}
		return nil, false
	case crucible.TypeBool:
		b, ok := v.(bool)
		return b, ok
	case crucible.TypeDateTime:
		switch t := v.(type) {
		case time.Time:
			return t, true
		case string:
			return parseRFC3339(t)
		}
		return nil, false
	case crucible.TypeList:
		l, ok := v.([]any)
		return l, ok
	case crucible.TypeObject:
		o, ok := v.(map[string]any)
		return o, ok
	}
	return nil, false
}

// IsEmptyOrNull reports absence, JSON null, and empty strings. Empty arrays
// and objects are not "empty" here: count constraints and nested schemas
// still need to see them.
func (Translator) IsEmptyOrNull(coll any, key string) bool {
	m, ok := coll.(map[string]any)
	if !ok {
		return true
	}
	v, ok := m[key]
	if !ok || v == nil {
		return true
	}
	s, isStr := v.(string)
	return isStr && s == ""
}

func (Translator) ContainsKey(coll any, key string) bool {
	m, ok := coll.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

// Keys enumerates the tree's top-level keys in sorted order for deterministic
// results.
func (Translator) Keys(coll any) ([]string, error) {
	m, ok := coll.(map[string]any)
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

// Insert mutates the tree in place and returns it.
func (Translator) Insert(coll any, key string, value any) (any, error) {
	m, ok := coll.(map[string]any)
	if !ok {
		return coll, crucible.ErrKeysUnsupported
	}
	if t, ok := value.(time.Time); ok {
		value = t.UTC().Format(time.RFC3339Nano)
	}
	m[key] = value
	return m, nil
}

func (Translator) DisplayString(coll any, key string) string {
	m, ok := coll.(map[string]any)
	if !ok {
		return ""
	}
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case gojson.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	}
	b, err := gojson.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func (Translator) TypeDisplayName(tag crucible.TypeTag) string {
	switch tag {
	case crucible.TypeString:
		return "string"
	case crucible.TypeInt:
		return "integer"
	case crucible.TypeFloat:
		return "number"
	case crucible.TypeBool:
		return "boolean"
	case crucible.TypeDateTime:
		return "date-time string"
	case crucible.TypeList:
		return "array"
	case crucible.TypeObject:
		return "object"
	}
	return "unknown"
}

func parseRFC3339(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
