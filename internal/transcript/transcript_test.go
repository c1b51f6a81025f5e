package transcript

import (
	"strings"
	"testing"
)

func TestEscapeUser(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hi", "hi"},
		{"angle brackets", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"ampersand", "a & b", "a &amp; b"},
		{"quotes", `say "hi" and 'bye'`, "say &quot;hi&quot; and &#39;bye&#39;"},
		{"newlines", "line one\nline two", "line one<br>line two"},
		{"crlf", "a\r\nb", "a<br>b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeUser(tt.in); got != tt.want {
				t.Errorf("EscapeUser(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUserEscapedBotTrusted(t *testing.T) {
	tr := New()
	tr.AppendUser("<b>bold</b>")
	tr.AppendBot("<b>bold</b>")

	html := tr.HTML()
	if !strings.Contains(html, "&lt;b&gt;bold&lt;/b&gt;") {
		t.Error("user markup was not escaped")
	}
	if !strings.Contains(html, "<b>bold</b>") {
		t.Error("bot markup was not preserved verbatim")
	}
}

func TestPendingLifecycle(t *testing.T) {
	tr := New()

	m, err := tr.AppendPending()
	if err != nil {
		t.Fatalf("AppendPending: %v", err)
	}
	if m.HTML != PlaceholderText {
		t.Errorf("placeholder text = %q", m.HTML)
	}
	if !tr.HasPending() {
		t.Error("HasPending = false with unresolved placeholder")
	}

	// Only one placeholder may exist at a time.
	if _, err := tr.AppendPending(); err == nil {
		t.Error("second AppendPending succeeded with one unresolved")
	}

	if err := tr.Resolve(m, "<p>done</p>"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tr.HasPending() {
		t.Error("HasPending = true after resolve")
	}
	if m.HTML != "<p>done</p>" || m.Pending() {
		t.Errorf("resolved message = %+v", m)
	}

	// Resolving twice is an error.
	if err := tr.Resolve(m, "again"); err == nil {
		t.Error("second Resolve succeeded")
	}

	// A new placeholder is allowed after resolution.
	if _, err := tr.AppendPending(); err != nil {
		t.Errorf("AppendPending after resolve: %v", err)
	}
}

func TestResolveWrongMessage(t *testing.T) {
	tr := New()
	other := tr.AppendBot("x")
	if _, err := tr.AppendPending(); err != nil {
		t.Fatal(err)
	}

	if err := tr.Resolve(other, "y"); err == nil {
		t.Error("resolved a non-placeholder message")
	}
	if err := tr.Resolve(nil, "y"); err == nil {
		t.Error("resolved nil message")
	}
}

func TestAnnotateConfidence(t *testing.T) {
	tr := New()
	bot := tr.AppendBot("answer")
	user := tr.AppendUser("question")

	tr.AnnotateConfidence(bot, 0.87)
	tr.AnnotateConfidence(user, 0.5) // ignored: only bot rows carry scores

	html := tr.HTML()
	if !strings.Contains(html, `<span class="confidence">87.0%</span>`) {
		t.Errorf("confidence annotation missing: %s", html)
	}
	if user.Confidence != nil {
		t.Error("user message was annotated")
	}
}

func TestFormatConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.87, "87.0%"},
		{1, "100.0%"},
		{0, "0.0%"},
		{0.876, "87.6%"},
		{0.8765, "87.7%"},
	}
	for _, tt := range tests {
		if got := FormatConfidence(tt.in); got != tt.want {
			t.Errorf("FormatConfidence(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAppendOrder(t *testing.T) {
	tr := New()
	tr.AppendUser("one")
	tr.AppendBot("two")
	tr.AppendUser("three")

	msgs := tr.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len = %d", len(msgs))
	}
	wantSenders := []Sender{SenderUser, SenderBot, SenderUser}
	for i, m := range msgs {
		if m.Sender != wantSenders[i] {
			t.Errorf("message %d sender = %s, want %s", i, m.Sender, wantSenders[i])
		}
	}
}
