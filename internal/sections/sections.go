// Package sections extracts and formats answer fragments from
// structured HTML documents. Answers are located by heading: the
// fragment starting at a matching <h1>..<h6> element and running to
// the next heading is the answer for that keyword.
package sections

import (
	"fmt"
	"regexp"
	"strings"
)

// NoSectionMessage is returned by FormatReadable for empty input.
const NoSectionMessage = "No relevant section found."

const defaultWordLimit = 400

var (
	headerRegex   = regexp.MustCompile(`(?is)<h[1-6][^>]*>.*?</h[1-6]>`)
	tagRegex      = regexp.MustCompile(`<[^>]+>`)
	sentenceRegex = regexp.MustCompile(`([.?!])\s+([A-Z])`)
)

// ExtractAfterHeading returns the HTML fragment beginning at the
// heading whose text equals heading (case-insensitive) and ending
// before the next heading. When no heading matches exactly, it falls
// back to a plain-text snippet around the first occurrence of the
// heading text, limited to wordLimit words (0 means a default of 400).
// It returns "" when the heading does not occur at all.
func ExtractAfterHeading(htmlText, heading string, wordLimit int) string {
	if htmlText == "" || strings.TrimSpace(heading) == "" {
		return ""
	}
	if wordLimit <= 0 {
		wordLimit = defaultWordLimit
	}
	want := strings.ToLower(strings.TrimSpace(heading))

	type header struct {
		start int
		title string
	}
	var headers []header
	for _, loc := range headerRegex.FindAllStringIndex(htmlText, -1) {
		title := strings.TrimSpace(tagRegex.ReplaceAllString(htmlText[loc[0]:loc[1]], ""))
		headers = append(headers, header{start: loc[0], title: title})
	}

	for i, h := range headers {
		if strings.ToLower(h.title) != want {
			continue
		}
		end := len(htmlText)
		if i+1 < len(headers) {
			end = headers[i+1].start
		}
		return htmlText[h.start:end]
	}

	// Approximate snippet near the first occurrence of the heading text.
	idx := strings.Index(strings.ToLower(htmlText), want)
	if idx < 0 {
		return ""
	}
	snippet := htmlText[idx:]
	if len(snippet) > 8000 {
		snippet = snippet[:8000]
	}
	snippet = tagRegex.ReplaceAllString(snippet, " ")
	words := strings.Fields(snippet)
	if len(words) > wordLimit {
		words = words[:wordLimit]
	}
	return fmt.Sprintf("<div class='formatted-answer'><h4>%s</h4><p>%s</p></div>",
		strings.TrimSpace(heading), strings.Join(words, " "))
}

// FormatReadable normalizes arrows and inserts paragraph breaks at
// sentence boundaries, wrapping the result in a formatted-answer div.
// Empty input yields the fixed NoSectionMessage.
func FormatReadable(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return NoSectionMessage
	}
	text := strings.ReplaceAll(rawHTML, "->", "→")
	text = strings.ReplaceAll(text, "➢", "→")
	text = sentenceRegex.ReplaceAllString(text, "$1<br><br>$2")
	return "<div class='formatted-answer'>" + text + "</div>"
}
