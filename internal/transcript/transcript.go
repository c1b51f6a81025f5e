// Package transcript holds the append-only message log of one chat
// session and renders it as HTML. All transcript mutation goes through
// this package so transport logic stays decoupled from presentation.
//
// Trust boundary: user-originated text is always entity-escaped before
// it enters the transcript; bot content is inserted as HTML verbatim.
// The answering service is trusted to return markup that was sanitized
// upstream.
package transcript

import (
	"fmt"
	"strings"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// PlaceholderText is the temporary bot row shown while a response is
// in flight.
const PlaceholderText = "Typing..."

// Message is one rendered transcript row. Content is HTML. Messages
// are immutable once appended except for resolving a pending
// placeholder and attaching a confidence annotation.
type Message struct {
	Sender     Sender
	HTML       string
	Confidence *float64 // rendered as a percent annotation when set
	pending    bool
}

// Pending reports whether the message is an unresolved placeholder.
func (m *Message) Pending() bool { return m.pending }

// Transcript is the append-only message log.
type Transcript struct {
	messages []*Message
	pending  *Message
}

// New creates an empty Transcript.
func New() *Transcript {
	return &Transcript{}
}

// AppendUser escapes text and appends it as a user message. The
// returned message is the appended row.
func (t *Transcript) AppendUser(text string) *Message {
	m := &Message{Sender: SenderUser, HTML: EscapeUser(text)}
	t.messages = append(t.messages, m)
	return m
}

// AppendBot appends html verbatim as a bot message.
func (t *Transcript) AppendBot(html string) *Message {
	m := &Message{Sender: SenderBot, HTML: html}
	t.messages = append(t.messages, m)
	return m
}

// AppendPending appends the "Typing..." bot placeholder and returns
// its handle. At most one unresolved placeholder may exist; a second
// call before Resolve returns an error.
func (t *Transcript) AppendPending() (*Message, error) {
	if t.pending != nil {
		return nil, fmt.Errorf("a pending message already exists")
	}
	m := &Message{Sender: SenderBot, HTML: PlaceholderText, pending: true}
	t.messages = append(t.messages, m)
	t.pending = m
	return m, nil
}

// Resolve overwrites the pending placeholder with final bot HTML. It
// is an error to resolve a message that is not the current placeholder.
func (t *Transcript) Resolve(m *Message, html string) error {
	if m == nil || m != t.pending {
		return fmt.Errorf("message is not the pending placeholder")
	}
	m.HTML = html
	m.pending = false
	t.pending = nil
	return nil
}

// AnnotateConfidence attaches a confidence score to a bot message,
// rendered as a percentage with one decimal place.
func (t *Transcript) AnnotateConfidence(m *Message, confidence float64) {
	if m == nil || m.Sender != SenderBot {
		return
	}
	m.Confidence = &confidence
}

// Len returns the number of appended messages.
func (t *Transcript) Len() int { return len(t.messages) }

// Messages returns the transcript rows in append order.
func (t *Transcript) Messages() []*Message {
	out := make([]*Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// HasPending reports whether an unresolved placeholder exists.
func (t *Transcript) HasPending() bool { return t.pending != nil }

// HTML renders the transcript as an HTML fragment of user/bot rows.
func (t *Transcript) HTML() string {
	var b strings.Builder
	for _, m := range t.messages {
		fmt.Fprintf(&b, `<div class="msg %s"><div class="msg-content">%s</div>`, m.Sender, m.HTML)
		if m.Confidence != nil {
			fmt.Fprintf(&b, `<span class="confidence">%s</span>`, FormatConfidence(*m.Confidence))
		}
		b.WriteString("</div>\n")
	}
	return b.String()
}

// EscapeUser converts user text to safe HTML: ampersand, angle
// brackets and both quote characters become entities, and newlines
// become <br>. User text is never interpreted as HTML.
func EscapeUser(text string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	escaped := r.Replace(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

// FormatConfidence renders a [0,1] score as a percentage with one
// decimal place, e.g. 0.87 -> "87.0%".
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}
