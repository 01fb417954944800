package industries

import "testing"

func TestParseBySlug(t *testing.T) {
	got := Parse("retail_ecommerce")
	if got.Label != "Retail & E-commerce" {
		t.Fatalf("expected label Retail & E-commerce, got %q", got.Label)
	}
	if got.Slug != "retail_ecommerce" {
		t.Fatalf("expected slug retail_ecommerce, got %q", got.Slug)
	}
}

func TestParseByLabel(t *testing.T) {
	got := Parse("Finance & Banking (incl. Fintech)")
	if got.Slug != "finance_banking" {
		t.Fatalf("expected slug finance_banking, got %q", got.Slug)
	}
}

func TestParseUnknownPassesThrough(t *testing.T) {
	got := Parse("Unknown Vertical")
	if got.Label != "Unknown Vertical" || got.Slug != "Unknown Vertical" {
		t.Fatalf("expected verbatim pass-through, got %+v", got)
	}
}

func TestParseIsCaseSensitive(t *testing.T) {
	got := Parse("RETAIL_ECOMMERCE")
	if got.Slug != "RETAIL_ECOMMERCE" {
		t.Fatalf("expected case-mismatched input to pass through, got %+v", got)
	}
}

func TestLabelAndSlug(t *testing.T) {
	if Label("other") != "Other" {
		t.Fatalf("expected Other, got %q", Label("other"))
	}
	if Slug("Other") != "other" {
		t.Fatalf("expected other, got %q", Slug("Other"))
	}
	if Label("missing") != "missing" {
		t.Fatalf("expected pass-through for unknown slug")
	}
}
