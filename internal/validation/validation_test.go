package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "   ", v)
	Required("code", "EQ-1", v)
	if v["name"] != "required" {
		t.Fatalf("expected name required, got %#v", v)
	}
	if _, ok := v["code"]; ok {
		t.Fatalf("code should be valid")
	}
}

func TestRequiredPtr(t *testing.T) {
	v := Violations{}
	blank := " "
	RequiredPtr("name", nil, v)
	if !v.Empty() {
		t.Fatalf("absent patch field must not be flagged")
	}
	RequiredPtr("name", &blank, v)
	if v["name"] != "required" {
		t.Fatalf("blank patch field must be flagged")
	}
}

func TestOneOf(t *testing.T) {
	v := Violations{}
	OneOf("avancement", "", []string{"a"}, v)
	OneOf("kind", "b", []string{"a"}, v)
	if len(v) != 1 || v["kind"] != "invalid_value" {
		t.Fatalf("unexpected violations %#v", v)
	}
}

func TestIntegers(t *testing.T) {
	v := Violations{}
	NonNegativeInt("freq", 0, v)
	PositiveInt("quantite", 0, v)
	if _, ok := v["freq"]; ok {
		t.Fatalf("zero is non-negative")
	}
	if v["quantite"] != "must_be_positive" {
		t.Fatalf("zero quantity must be rejected")
	}
}
