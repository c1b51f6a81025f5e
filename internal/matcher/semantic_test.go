package matcher

import (
	"context"
	"math"
	"strings"
	"testing"
)

// wordEmbedder is a deterministic test embedder: a normalized
// bag-of-words vector over a fixed vocabulary.
type wordEmbedder struct {
	vocab []string
}

func (e *wordEmbedder) Name() string { return "test/bag-of-words" }

func (e *wordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, len(e.vocab)+1)
	var norm float64
	for i, w := range e.vocab {
		if strings.Contains(strings.ToLower(text), w) {
			vec[i] = 1
			norm++
		}
	}
	if norm == 0 {
		// Out-of-vocabulary text gets its own axis so the vector is
		// still unit length.
		vec[len(e.vocab)] = 1
		return vec, nil
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec, nil
}

func TestSemanticMatchRanking(t *testing.T) {
	emb := &wordEmbedder{vocab: []string{"grading", "schedule", "exam", "lecture"}}
	m, err := NewSemanticMatcher(emb)
	if err != nil {
		t.Fatalf("NewSemanticMatcher: %v", err)
	}

	keywords := []string{"grading exam", "lecture schedule"}
	got, err := m.Match(context.Background(), "when is the exam and how is grading done", keywords, 2)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Keyword != "grading exam" {
		t.Errorf("top match = %q, want %q", got[0].Keyword, "grading exam")
	}
	if got[0].Confidence <= got[1].Confidence {
		t.Errorf("confidences not descending: %v", got)
	}
	for _, s := range got {
		if s.Confidence < 0 || s.Confidence > 1 {
			t.Errorf("confidence %v out of [0,1]", s.Confidence)
		}
	}
}

func TestSemanticMatchLimitClamped(t *testing.T) {
	emb := &wordEmbedder{vocab: []string{"grading"}}
	m, err := NewSemanticMatcher(emb)
	if err != nil {
		t.Fatalf("NewSemanticMatcher: %v", err)
	}

	got, err := m.Match(context.Background(), "grading", []string{"grading"}, 5)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d results, want 1", len(got))
	}
}

func TestSemanticMatchEmpty(t *testing.T) {
	emb := &wordEmbedder{vocab: []string{"grading"}}
	m, err := NewSemanticMatcher(emb)
	if err != nil {
		t.Fatalf("NewSemanticMatcher: %v", err)
	}

	if got, _ := m.Match(context.Background(), "q", nil, 3); got != nil {
		t.Errorf("no keywords: got %v, want nil", got)
	}
}

func TestSemanticMatchReindexesChangedKeywords(t *testing.T) {
	emb := &wordEmbedder{vocab: []string{"grading", "schedule", "exam", "lecture"}}
	m, err := NewSemanticMatcher(emb)
	if err != nil {
		t.Fatalf("NewSemanticMatcher: %v", err)
	}

	ctx := context.Background()
	first := []string{"grading policy", "course schedule"}
	if _, err := m.Match(ctx, "how is grading done", first, 2); err != nil {
		t.Fatalf("Match(first): %v", err)
	}

	// A different document's keyword set of the same size must not be
	// served from the previous index.
	second := []string{"exam rules", "lecture notes"}
	got, err := m.Match(ctx, "when is the exam", second, 2)
	if err != nil {
		t.Fatalf("Match(second): %v", err)
	}
	for _, s := range got {
		for _, stale := range first {
			if s.Keyword == stale {
				t.Errorf("stale keyword from previous set returned: %q", s.Keyword)
			}
		}
	}
	if len(got) == 0 || got[0].Keyword != "exam rules" {
		t.Errorf("top match = %v, want %q first", got, "exam rules")
	}

	// Same set, different order: no stale results either way.
	reordered := []string{"lecture notes", "exam rules"}
	got, err = m.Match(ctx, "when is the exam", reordered, 2)
	if err != nil {
		t.Fatalf("Match(reordered): %v", err)
	}
	if len(got) == 0 || got[0].Keyword != "exam rules" {
		t.Errorf("top match after reorder = %v, want %q first", got, "exam rules")
	}
}
