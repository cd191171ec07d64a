package validation

import "testing"

func TestIsSlug(t *testing.T) {
	valid := []string{
		"emerald-language-institute",
		"a",
		"abc123",
		"general-english-20",
	}
	for _, s := range valid {
		if !IsSlug(s) {
			t.Errorf("expected %q to be a valid slug", s)
		}
	}

	invalid := []string{
		"",
		"Has-Capitals",
		"double--hyphen",
		"-leading",
		"trailing-",
		"spaces here",
		"under_score",
		"dots.allowed",
	}
	for _, s := range invalid {
		if IsSlug(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestValidateStructWithSlugTag(t *testing.T) {
	type payload struct {
		Slug string `validate:"required,slug"`
	}

	v := NewValidator()
	if err := v.ValidateStruct(payload{Slug: "valid-slug"}); err != nil {
		t.Fatalf("expected valid payload to pass, got %v", err)
	}

	err := v.ValidateStruct(payload{Slug: "Not A Slug"})
	if err == nil {
		t.Fatal("expected invalid slug to fail validation")
	}

	formatted := FormatValidationErrors(err)
	if msg, ok := formatted["slug"]; !ok || msg == "" {
		t.Fatalf("expected a formatted slug error, got %v", formatted)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  Dublin\x00  "); got != "Dublin" {
		t.Fatalf("expected %q, got %q", "Dublin", got)
	}
}
