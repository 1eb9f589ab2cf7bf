package core

import (
	"errors"
	"testing"

	"github.com/valter-silva-au/md-task/pkg/models"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want models.Priority
	}{
		{"high", models.PriorityHigh},
		{"medium", models.PriorityMedium},
		{"low", models.PriorityLow},
		{"HIGH", models.PriorityHigh},
		{" Low ", models.PriorityLow},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		if err != nil {
			t.Errorf("ParsePriority(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePriority_Invalid(t *testing.T) {
	for _, in := range []string{"", "urgent", "P1", "🔴"} {
		_, err := ParsePriority(in)
		if !errors.Is(err, ErrInvalidPriority) {
			t.Errorf("ParsePriority(%q) error = %v, want ErrInvalidPriority", in, err)
		}
	}
}

func TestPrioritySymbols(t *testing.T) {
	for _, p := range models.Priorities {
		got, ok := models.PriorityForSymbol(p.Symbol())
		if !ok || got != p {
			t.Errorf("PriorityForSymbol(%q) = %q, %v; want %q", p.Symbol(), got, ok, p)
		}
	}
	if models.Priority("bogus").Symbol() != models.SymbolMedium {
		t.Error("unknown priority should render the medium symbol")
	}
	if _, ok := models.PriorityForSymbol("⚪"); ok {
		t.Error("unexpected priority for unknown symbol")
	}
}

func TestTaskLabel(t *testing.T) {
	tests := []struct {
		task models.Task
		want string
	}{
		{models.Task{Priority: models.PriorityHigh, Text: "pay rent"}, "🔴 pay rent"},
		{models.Task{Priority: models.PriorityLow, Text: "stretch"}, "🟢 stretch"},
		{models.Task{Text: "no marker"}, "no marker"},
	}
	for _, tt := range tests {
		if got := tt.task.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
	if g := models.Priority("").Glyph(); g != "" {
		t.Errorf("empty priority glyph = %q, want none", g)
	}
}
