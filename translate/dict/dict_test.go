package dict_test

import (
	"testing"
	"time"

	crucible "github.com/schema-forge/crucible"
	"github.com/schema-forge/crucible/rules"
	"github.com/schema-forge/crucible/translate/dict"
)

func TestCastFromStrings(t *testing.T) {
	tr := dict.New()
	m := map[string]string{
		"i": "42",
		"f": "1.5",
		"b": "true",
		"t": "2026-08-30T12:00:00Z",
		"s": "plain",
	}

	if v, ok := tr.Cast(m, "i", crucible.TypeInt); !ok || v != int64(42) {
		t.Fatalf("integer parse failed: %v %v", v, ok)
	}
	if v, ok := tr.Cast(m, "f", crucible.TypeFloat); !ok || v != 1.5 {
		t.Fatalf("float parse failed: %v %v", v, ok)
	}
	if v, ok := tr.Cast(m, "b", crucible.TypeBool); !ok || v != true {
		t.Fatalf("bool parse failed: %v %v", v, ok)
	}
	if v, ok := tr.Cast(m, "t", crucible.TypeDateTime); !ok || v.(time.Time).Year() != 2026 {
		t.Fatalf("datetime parse failed: %v %v", v, ok)
	}
	if _, ok := tr.Cast(m, "s", crucible.TypeInt); ok {
		t.Fatalf("non-numeric text must not parse as integer")
	}
	if _, ok := tr.Cast(m, "s", crucible.TypeList); ok {
		t.Fatalf("dictionaries have no nested arrays")
	}
	if _, ok := tr.Cast(m, "s", crucible.TypeObject); ok {
		t.Fatalf("dictionaries have no nested objects")
	}
}

// TestFirstMatchWinsOverDictionary exercises the documented ordering edge
// case in the representation where it bites hardest: every dictionary value
// casts to string, so a string-first field never reaches its integer
// constraints.
func TestFirstMatchWinsOverDictionary(t *testing.T) {
	f := crucible.NewField("timeout", "seconds or preset",
		crucible.String(rules.OneOf("none", "default")),
		crucible.Int(rules.InRange[int64](1, 300)),
	).MustBuild()

	errs := f.Validate(map[string]string{"timeout": "9999"}, dict.New())
	// "9999" validated as a string and failed the allow-list; the in-range
	// integer interpretation was never consulted.
	if !crucible.AnyFatal(errs) {
		t.Fatalf("expected the string constraints to reject the value: %v", errs)
	}
}

func TestInsertStringifies(t *testing.T) {
	tr := dict.New()
	m := map[string]string{}

	if _, err := tr.Insert(m, "port", int64(8080)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if m["port"] != "8080" {
		t.Fatalf("integer default should stringify: %q", m["port"])
	}
	if _, err := tr.Insert(m, "when", time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("insert time: %v", err)
	}
	if m["when"] != "2026-08-30T00:00:00Z" {
		t.Fatalf("time default should render RFC3339: %q", m["when"])
	}
	if _, err := tr.Insert(m, "bad", []any{1}); err == nil {
		t.Fatalf("composites cannot live in a string dictionary")
	}
}

func TestEmptyKeysDisplay(t *testing.T) {
	tr := dict.New()
	m := map[string]string{"a": "", "b": "x"}

	if !tr.IsEmptyOrNull(m, "a") || !tr.IsEmptyOrNull(m, "missing") {
		t.Fatalf("empty value and absence are both empty")
	}
	if tr.IsEmptyOrNull(m, "b") {
		t.Fatalf("non-empty value reported empty")
	}

	ks, err := tr.Keys(m)
	if err != nil || len(ks) != 2 || ks[0] != "a" {
		t.Fatalf("keys: %v %v", ks, err)
	}
	if got := tr.DisplayString(m, "b"); got != "x" {
		t.Fatalf("display: %q", got)
	}
}
