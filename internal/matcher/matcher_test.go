package matcher

import (
	"context"
	"testing"
)

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "grading policy", "grading policy", 1, 1},
		{"word order ignored", "policy grading", "grading policy", 1, 1},
		{"subset scores full", "grading", "grading policy overview", 1, 1},
		{"unrelated", "zebra", "quantum", 0, 0.4},
		{"empty side", "", "grading", 0, 0},
		{"case insensitive", "GRADING", "grading", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenSetRatio(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("TokenSetRatio(%q, %q) = %v, want within [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestFuzzyMatchRanking(t *testing.T) {
	m := NewFuzzyMatcher()
	keywords := []string{"Operating Systems", "Grading Policy", "Course Schedule"}

	got, err := m.Match(context.Background(), "what is the grading policy?", keywords, 3)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if got[0].Keyword != "Grading Policy" {
		t.Errorf("top match = %q, want Grading Policy", got[0].Keyword)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Errorf("results not sorted: %v", got)
		}
	}
	for _, s := range got {
		if s.Confidence < 0 || s.Confidence > 1 {
			t.Errorf("confidence %v out of [0,1]", s.Confidence)
		}
	}
}

func TestFuzzyMatchLimit(t *testing.T) {
	m := NewFuzzyMatcher()
	keywords := []string{"a", "b", "c", "d"}

	got, err := m.Match(context.Background(), "a", keywords, 2)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
}

func TestFuzzyMatchEmptyInputs(t *testing.T) {
	m := NewFuzzyMatcher()

	if got, _ := m.Match(context.Background(), "  ", []string{"a"}, 3); got != nil {
		t.Errorf("blank question: got %v, want nil", got)
	}
	if got, _ := m.Match(context.Background(), "q", nil, 3); got != nil {
		t.Errorf("no keywords: got %v, want nil", got)
	}
}
