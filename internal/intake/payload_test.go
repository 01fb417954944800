package intake

import (
	"reflect"
	"testing"
)

func TestResolveEmailPriority(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		want      string
	}{
		{
			name: "named Email field wins",
			questions: []Question{
				{Name: "Work email", Type: "EmailInput", Value: "work@example.com"},
				{Name: "Email", Type: "ShortAnswer", Value: "primary@example.com"},
			},
			want: "primary@example.com",
		},
		{
			name: "lowercase email before work email",
			questions: []Question{
				{Name: "Work email", Value: "work@example.com"},
				{Name: "email", Value: "lower@example.com"},
			},
			want: "lower@example.com",
		},
		{
			name: "email-typed question when names miss",
			questions: []Question{
				{Name: "Contact", Type: "EmailInput", Value: "typed@example.com"},
			},
			want: "typed@example.com",
		},
		{
			name: "regex scan as last resort",
			questions: []Question{
				{Name: "Company Name", Value: "Acme"},
				{Name: "How can we reach you?", Value: "found@example.com"},
			},
			want: "found@example.com",
		},
		{
			name: "first email-shaped value in question order",
			questions: []Question{
				{Name: "Backup contact", Value: "first@example.com"},
				{Name: "Other contact", Value: "second@example.com"},
			},
			want: "first@example.com",
		},
		{
			name: "no email anywhere",
			questions: []Question{
				{Name: "Company Name", Value: "Acme"},
				{Name: "Website", Value: "acme.example"},
			},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := FieldMap(tt.questions)
			if got := ResolveEmail(tt.questions, fields); got != tt.want {
				t.Fatalf("ResolveEmail = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldMapFallsBackToID(t *testing.T) {
	fields := FieldMap([]Question{
		{ID: "q1", Name: "", Value: "anonymous"},
		{ID: "q2", Name: "Company Name", Value: "Acme"},
	})
	if fields["q1"] != "anonymous" {
		t.Fatalf("expected ID key for unnamed question, got %v", fields["q1"])
	}
	if fields["Company Name"] != "Acme" {
		t.Fatalf("expected name key, got %v", fields["Company Name"])
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"number", float64(120), "120"},
		{"empty array", []any{}, ""},
		{"single item array", []any{"Only one"}, "Only one"},
		{"multi select", []any{"A", "B", "C"}, "A, B, C"},
		{"mixed array", []any{"A", float64(2)}, "A, 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeValue(tt.value); got != tt.want {
				t.Fatalf("NormalizeValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	if got := StringList("not an array"); len(got) != 0 {
		t.Fatalf("expected empty slice for scalar, got %v", got)
	}
	if got := StringList(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
	got := StringList([]any{"New entrants", nil, "Price pressure"})
	want := []string{"New entrants", "Price pressure"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("StringList = %v, want %v", got, want)
	}
}
