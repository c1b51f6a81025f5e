package transcript

import (
	"fmt"
	"strings"
)

// MatchEntry is one ranked candidate answer in a MatchList.
type MatchEntry struct {
	Keyword    string
	Confidence float64
	Answer     string // trusted HTML
}

// MatchList presents ranked matches as selectable entries. Revealing
// an entry shows that entry's full answer; entries are never removed
// and reveals are repeatable. One answer is shown at a time.
type MatchList struct {
	entries  []MatchEntry
	revealed int // index of the revealed entry, -1 for none
}

// NewMatchList creates a MatchList over the given entries, none revealed.
func NewMatchList(entries []MatchEntry) *MatchList {
	return &MatchList{entries: entries, revealed: -1}
}

// Len returns the number of entries.
func (l *MatchList) Len() int { return len(l.entries) }

// Entries returns the entries in rank order.
func (l *MatchList) Entries() []MatchEntry {
	out := make([]MatchEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Label returns the selectable label for the entry at index i:
// 1-based rank, keyword and confidence percentage.
func (l *MatchList) Label(i int) string {
	e := l.entries[i]
	return fmt.Sprintf("%d. %s (%s)", i+1, e.Keyword, FormatConfidence(e.Confidence))
}

// Reveal marks entry i as the shown answer and returns its HTML.
// Revealing is idempotent and repeatable; revealing one entry hides
// the previously revealed one but removes nothing.
func (l *MatchList) Reveal(i int) (string, error) {
	if i < 0 || i >= len(l.entries) {
		return "", fmt.Errorf("match index %d out of range [0,%d)", i, len(l.entries))
	}
	l.revealed = i
	return l.entries[i].Answer, nil
}

// Revealed returns the index of the currently revealed entry, or -1.
func (l *MatchList) Revealed() int { return l.revealed }

// HTML renders the entry labels plus the revealed answer, if any.
// All labels stay present regardless of the revealed state.
func (l *MatchList) HTML() string {
	var b strings.Builder
	b.WriteString(`<div class="match-list">`)
	for i := range l.entries {
		fmt.Fprintf(&b, `<button class="match" data-match="%d">%s</button>`, i, l.Label(i))
	}
	if l.revealed >= 0 {
		fmt.Fprintf(&b, `<div class="match-answer">%s</div>`, l.entries[l.revealed].Answer)
	}
	b.WriteString(`</div>`)
	return b.String()
}
