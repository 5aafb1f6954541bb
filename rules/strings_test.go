package rules_test

import (
	"strings"
	"testing"

	crucible "github.com/schema-forge/crucible"
	"github.com/schema-forge/crucible/rules"
)

// TestOneOf checks the allow-list produces exactly one Fatal naming the valid
// set.
func TestOneOf(t *testing.T) {
	c := rules.OneOf("A", "B")
	if errs := c.Check("A", "f"); len(errs) != 0 {
		t.Fatalf("member should pass: %v", errs)
	}
	errs := c.Check("C", "f")
	if len(errs) != 1 || errs[0].Severity != crucible.SeverityFatal {
		t.Fatalf("expected exactly one fatal, got %v", errs)
	}
	if !strings.Contains(errs[0].Message, `"A"`) || !strings.Contains(errs[0].Message, `"B"`) {
		t.Fatalf("message should name the valid set: %s", errs[0].Message)
	}

	if rules.OneOf().Err() == nil {
		t.Fatalf("empty allow-list must carry a construction error")
	}
}

// TestMatchAnyPattern pins whole-string semantics: a substring match is not
// enough.
func TestMatchAnyPattern(t *testing.T) {
	c := rules.MatchAnyPattern(`[a-z]+`, `[0-9]{4}`)
	if errs := c.Check("abc", "f"); crucible.AnyFatal(errs) {
		t.Fatalf("first pattern should match: %v", errs)
	}
	if errs := c.Check("2026", "f"); crucible.AnyFatal(errs) {
		t.Fatalf("second pattern should match: %v", errs)
	}
	if errs := c.Check("abc123", "f"); !crucible.AnyFatal(errs) {
		t.Fatalf("partial match must fail the whole-string check")
	}

	if rules.MatchAnyPattern(`(`).Err() == nil {
		t.Fatalf("uncompilable pattern must carry a construction error")
	}
}

func TestLengthBetween(t *testing.T) {
	c := rules.LengthBetween(2, 4)
	if errs := c.Check("ab", "f"); crucible.AnyFatal(errs) {
		t.Fatalf("lower boundary should pass: %v", errs)
	}
	if errs := c.Check("abcde", "f"); !crucible.AnyFatal(errs) {
		t.Fatalf("over-long value must fail")
	}
	if rules.LengthBetween(4, 2).Err() == nil {
		t.Fatalf("inverted bounds must carry a construction error")
	}
}

func TestForbidSubstrings(t *testing.T) {
	c := rules.ForbidSubstrings("..", "//")
	if errs := c.Check("a/b", "f"); crucible.AnyFatal(errs) {
		t.Fatalf("clean value should pass: %v", errs)
	}
	errs := c.Check("a//b..c", "f")
	if !crucible.AnyFatal(errs) {
		t.Fatalf("forbidden substrings must fail")
	}
	if !strings.Contains(errs[0].Message, "..") || !strings.Contains(errs[0].Message, "//") {
		t.Fatalf("message should name the found substrings: %s", errs[0].Message)
	}

	if rules.ForbidSubstrings().Err() == nil {
		t.Fatalf("zero-length forbidden set must carry a construction error")
	}
	if rules.ForbidSubstrings("").Err() == nil {
		t.Fatalf("empty member must carry a construction error")
	}
}

func TestMatchAny(t *testing.T) {
	c := rules.MatchAny(
		rules.OneOf("none"),
		rules.MatchAnyPattern(`[0-9]+s`),
	)
	if errs := c.Check("none", "f"); crucible.AnyFatal(errs) {
		t.Fatalf("first member should pass: %v", errs)
	}
	if errs := c.Check("30s", "f"); crucible.AnyFatal(errs) {
		t.Fatalf("second member should pass: %v", errs)
	}
	if errs := c.Check("later", "f"); !crucible.AnyFatal(errs) {
		t.Fatalf("all-member failure must fail")
	}

	if rules.MatchAny[string]().Err() == nil {
		t.Fatalf("empty member set must carry a construction error")
	}
	if rules.MatchAny(rules.OneOf()).Err() == nil {
		t.Fatalf("a failed member must propagate its construction error")
	}
}

func TestDateLayout(t *testing.T) {
	c := rules.DateLayout("2006-01-02", "02.01.2006")
	if errs := c.Check("2026-08-30", "f"); crucible.AnyFatal(errs) {
		t.Fatalf("first layout should match: %v", errs)
	}
	if errs := c.Check("30.08.2026", "f"); crucible.AnyFatal(errs) {
		t.Fatalf("second layout should match: %v", errs)
	}
	if errs := c.Check("08/30/2026", "f"); !crucible.AnyFatal(errs) {
		t.Fatalf("unknown layout must fail")
	}
	if c.Kind() != crucible.KindFormat {
		t.Fatalf("date layout is a format constraint")
	}
	if rules.DateLayout().Err() == nil {
		t.Fatalf("empty layout set must carry a construction error")
	}
}
