package matcher

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// FuzzyMatcher scores keywords with a token-set similarity: both
// strings are reduced to sorted unique word sets and compared on the
// shared-token prefix against each full set. Word order and repeated
// words do not affect the score, so "syllabus grading" and "grading
// policy in the syllabus" score high against each other.
type FuzzyMatcher struct{}

// NewFuzzyMatcher creates a FuzzyMatcher.
func NewFuzzyMatcher() *FuzzyMatcher {
	return &FuzzyMatcher{}
}

func (m *FuzzyMatcher) Match(ctx context.Context, question string, keywords []string, limit int) ([]Scored, error) {
	question = strings.TrimSpace(question)
	if question == "" || len(keywords) == 0 {
		return nil, nil
	}

	scored := make([]Scored, 0, len(keywords))
	for _, kw := range keywords {
		scored = append(scored, Scored{
			Keyword:    kw,
			Confidence: round3(TokenSetRatio(question, kw)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// TokenSetRatio returns a similarity in [0,1] between a and b based on
// their word sets. With t0 the sorted intersection and t1, t2 the
// intersection extended by each side's remainder, the result is the
// best pairwise similarity among (t0,t1), (t0,t2) and (t1,t2). A
// non-empty shared token set against a fully-contained side yields 1.
func TokenSetRatio(a, b string) float64 {
	sa := tokenSet(a)
	sb := tokenSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	var inter, diffA, diffB []string
	for _, tok := range sa {
		if contains(sb, tok) {
			inter = append(inter, tok)
		} else {
			diffA = append(diffA, tok)
		}
	}
	for _, tok := range sb {
		if !contains(sa, tok) {
			diffB = append(diffB, tok)
		}
	}

	t0 := strings.Join(inter, " ")
	t1 := strings.TrimSpace(t0 + " " + strings.Join(diffA, " "))
	t2 := strings.TrimSpace(t0 + " " + strings.Join(diffB, " "))

	best := similarity(t1, t2)
	if t0 != "" {
		best = math.Max(best, similarity(t0, t1))
		best = math.Max(best, similarity(t0, t2))
	}
	return best
}

// similarity is a normalized Levenshtein similarity: 1 - dist/maxlen.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// tokenSet lowercases, strips punctuation and returns the sorted set
// of unique words.
func tokenSet(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r > 127)
	})
	seen := map[string]bool{}
	var out []string
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

func contains(set []string, tok string) bool {
	for _, t := range set {
		if t == tok {
			return true
		}
	}
	return false
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
