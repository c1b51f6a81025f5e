// Package matcher ranks stored topic keywords against a user question
// and produces confidence scores in [0,1].
package matcher

import "context"

// Scored is one ranked keyword with its confidence.
type Scored struct {
	Keyword    string
	Confidence float64
}

// Matcher ranks the given keywords against a question, best first,
// returning at most limit results.
type Matcher interface {
	Match(ctx context.Context, question string, keywords []string, limit int) ([]Scored, error)
}
