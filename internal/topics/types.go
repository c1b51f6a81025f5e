package topics

import "time"

// Topic is one answerable unit: a keyword and the HTML answer shown
// when the keyword is matched against a user question. Topics are
// grouped by the document they were extracted from.
type Topic struct {
	ID         string    `json:"id"`
	Document   string    `json:"document"`
	Keyword    string    `json:"keyword"`
	AnswerHTML string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}
