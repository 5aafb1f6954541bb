package crucible_test

import (
	"strings"
	"testing"

	crucible "github.com/schema-forge/crucible"
	"github.com/schema-forge/crucible/rules"
	"github.com/schema-forge/crucible/translate/jsontree"
)

// probe returns a passing constraint that records whether it ran.
func probe(ran *bool) crucible.Constraint[int64] {
	return crucible.NewConstraint[int64]("probe", "records invocation", func(v int64, field string) crucible.ErrorList {
		*ran = true
		return nil
	})
}

func probeStr(ran *bool) crucible.Constraint[string] {
	return crucible.NewConstraint[string]("probe", "records invocation", func(v, field string) crucible.ErrorList {
		*ran = true
		return nil
	})
}

// TestFieldFirstMatchWins pins the deliberate edge case: a field declared
// <string, int> validates a numeric-looking value as a string, and the
// integer constraints are never invoked.
func TestFieldFirstMatchWins(t *testing.T) {
	var ranStr, ranInt bool
	f := crucible.NewField("timeout", "seconds or preset",
		crucible.String(probeStr(&ranStr)),
		crucible.Int(probe(&ranInt)),
	).MustBuild()

	errs := f.Validate(map[string]any{"timeout": "30"}, jsontree.New())
	if crucible.AnyFatal(errs) {
		t.Fatalf("unexpected fatal: %v", errs)
	}
	if !ranStr {
		t.Fatalf("string constraints should have run")
	}
	if ranInt {
		t.Fatalf("integer constraints must never be consulted after a successful string cast")
	}
}

func TestFieldSecondTypeCast(t *testing.T) {
	var ranStr, ranInt bool
	f := crucible.NewField("timeout", "seconds or preset",
		crucible.String(probeStr(&ranStr)),
		crucible.Int(probe(&ranInt)),
	).MustBuild()

	doc, err := jsontree.Decode([]byte(`{"timeout": 30}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	errs := f.Validate(doc, jsontree.New())
	if crucible.AnyFatal(errs) {
		t.Fatalf("unexpected fatal: %v", errs)
	}
	if ranStr {
		t.Fatalf("string constraints must not run for a numeric value")
	}
	if !ranInt {
		t.Fatalf("integer constraints should have run")
	}
}

// TestFieldCastFailureNamesAllTypes checks that when every candidate type
// fails to cast, a single Fatal entry names each attempted type.
func TestFieldCastFailureNamesAllTypes(t *testing.T) {
	f := crucible.NewField("flag", "toggles the feature",
		crucible.Bool(),
		crucible.Int(),
	).MustBuild()

	errs := f.Validate(map[string]any{"flag": "definitely"}, jsontree.New())
	if len(errs) != 1 || errs[0].Severity != crucible.SeverityFatal {
		t.Fatalf("expected exactly one fatal, got %v", errs)
	}
	if !strings.Contains(errs[0].Message, "boolean") || !strings.Contains(errs[0].Message, "integer") {
		t.Fatalf("message should name every attempted type: %s", errs[0].Message)
	}
}

func TestFieldEmptyOrNull(t *testing.T) {
	f := crucible.NewField("name", "display name", crucible.String()).MustBuild()
	errs := f.Validate(map[string]any{"name": ""}, jsontree.New())
	if !crucible.AnyFatal(errs) {
		t.Fatalf("empty value should be fatal by default: %v", errs)
	}

	nullable := crucible.NewField("name", "display name", crucible.String()).AllowNull().MustBuild()
	errs = nullable.Validate(map[string]any{"name": ""}, jsontree.New())
	if crucible.AnyFatal(errs) {
		t.Fatalf("allow-null should downgrade to warning: %v", errs)
	}
	if len(errs) != 1 || errs[0].Severity != crucible.SeverityWarning {
		t.Fatalf("expected one warning, got %v", errs)
	}
}

func TestFieldBuilderUsageErrors(t *testing.T) {
	if _, err := crucible.NewField("", "desc", crucible.String()).Build(); err == nil {
		t.Fatalf("empty name must fail at build time")
	}
	if _, err := crucible.NewField("x", "desc", crucible.String(), crucible.String()).Build(); err == nil {
		t.Fatalf("duplicate candidate types must fail at build time")
	}
	if _, err := crucible.NewField("x", "desc", crucible.String()).Required().Default("v").Build(); err == nil {
		t.Fatalf("a defaulted field cannot be required")
	}
	if _, err := crucible.NewField("x", "desc", crucible.Int()).Default("not an int").Build(); err == nil {
		t.Fatalf("default must be typed to the first candidate type")
	}
	if _, err := crucible.NewField("x", "desc", crucible.Int(rules.InRange[int64](50, 10))).Build(); err == nil {
		t.Fatalf("inverted range must fail at build time, not validation time")
	}
	if _, err := crucible.NewField("x", "desc", crucible.String(crucible.NewConstraint[string]("", "d", nil))).Build(); err == nil {
		t.Fatalf("empty constraint name must fail at build time")
	}
}

func TestBrokenConstraintCheckReportsError(t *testing.T) {
	c := rules.InRange[int64](50, 10)
	errs := c.Check(25, "port")
	if !crucible.AnyFatal(errs) {
		t.Fatalf("a constraint carrying a construction error must not pass: %v", errs)
	}
}

func TestFieldAddType(t *testing.T) {
	f := crucible.NewField("timeout", "seconds or preset",
		crucible.String(rules.OneOf("none")),
	).MustBuild()

	f2, err := f.AddType(crucible.Int(rules.InRange[int64](1, 300)))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(f.Types()) != 1 || len(f2.Types()) != 2 {
		t.Fatalf("AddType must return a new Field and leave the receiver untouched")
	}

	doc, _ := jsontree.Decode([]byte(`{"timeout": 30}`))
	if errs := f2.Validate(doc, jsontree.New()); crucible.AnyFatal(errs) {
		t.Fatalf("new candidate type should validate: %v", errs)
	}
	if errs := f.Validate(doc, jsontree.New()); !crucible.AnyFatal(errs) {
		t.Fatalf("original field must not see the added type")
	}

	if _, err := f2.AddType(crucible.Int()); err == nil {
		t.Fatalf("adding an already-declared type must fail")
	}
}

func TestFieldFormatConstraints(t *testing.T) {
	f := crucible.NewField("when", "event date",
		crucible.String().Format(rules.DateLayout("2006-01-02")),
	).MustBuild()

	if errs := f.Validate(map[string]any{"when": "2026-08-30"}, jsontree.New()); crucible.AnyFatal(errs) {
		t.Fatalf("layout should match: %v", errs)
	}
	if errs := f.Validate(map[string]any{"when": "30/08/2026"}, jsontree.New()); !crucible.AnyFatal(errs) {
		t.Fatalf("layout mismatch should be fatal")
	}
}
