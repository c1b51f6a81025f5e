// Package chat wires user input, the answer-service transport and the
// transcript into one chat session. A session handles one request at a
// time: input is gated while a round trip is in flight and released
// when it settles, whatever the outcome.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/docchat/docchat/internal/client"
	"github.com/docchat/docchat/internal/transcript"
)

// Fixed user-visible texts. Connectivity failures and non-2xx
// responses read the same to the user; there is no retry.
const (
	ConnectErrorMessage = "Unable to reach the answer service. Please try again."
	NoAnswerMessage     = "No relevant answer found."
)

// ErrBusy is returned when Send is called while a request is in flight.
var ErrBusy = errors.New("a request is already in flight")

// Asker abstracts the transport so sessions can be tested against a
// fake backend.
type Asker interface {
	Ask(ctx context.Context, question string) (*client.ChatResult, error)
}

// Outcome classifies what one Send produced.
type Outcome int

const (
	// OutcomeNone means empty input: nothing appended, nothing sent.
	OutcomeNone Outcome = iota
	// OutcomeAnswer means a single answer was rendered directly.
	OutcomeAnswer
	// OutcomeMatches means ranked match summaries were rendered.
	OutcomeMatches
	// OutcomeNoAnswer means the service returned zero matches.
	OutcomeNoAnswer
	// OutcomeError means a connectivity or service failure.
	OutcomeError
)

// Reply describes the result of one Send.
type Reply struct {
	Outcome Outcome
	// Matches is set for OutcomeMatches; picking an entry reveals
	// that match's answer.
	Matches *transcript.MatchList
	// Message is the resolved bot row, nil for OutcomeNone.
	Message *transcript.Message
}

// Session is one page-load-lifetime chat: a transcript plus a
// transport. It is not safe for concurrent use; the busy gate models
// the disabled input, not a lock.
type Session struct {
	transcript *transcript.Transcript
	asker      Asker
	busy       bool
}

// NewSession creates a Session over the given transport.
func NewSession(asker Asker) *Session {
	return &Session{
		transcript: transcript.New(),
		asker:      asker,
	}
}

// Transcript returns the session's transcript.
func (s *Session) Transcript() *transcript.Transcript { return s.transcript }

// Busy reports whether a request is in flight (input disabled).
func (s *Session) Busy() bool { return s.busy }

// Send submits one user message. Empty or whitespace-only input is a
// no-op. Otherwise exactly one user row and one bot row (placeholder,
// then resolved) are appended, and the input gate is released exactly
// once when the round trip settles regardless of the branch taken.
func (s *Session) Send(ctx context.Context, raw string) (*Reply, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return &Reply{Outcome: OutcomeNone}, nil
	}
	if s.busy {
		return nil, ErrBusy
	}

	s.busy = true
	defer func() { s.busy = false }()

	s.transcript.AppendUser(text)
	pending, err := s.transcript.AppendPending()
	if err != nil {
		return nil, err
	}

	result, err := s.asker.Ask(ctx, text)
	if err != nil {
		s.transcript.Resolve(pending, ConnectErrorMessage)
		return &Reply{Outcome: OutcomeError, Message: pending}, nil
	}

	switch len(result.Matches) {
	case 0:
		s.transcript.Resolve(pending, NoAnswerMessage)
		return &Reply{Outcome: OutcomeNoAnswer, Message: pending}, nil

	case 1:
		m := result.Matches[0]
		s.transcript.Resolve(pending, m.Answer)
		s.transcript.AnnotateConfidence(pending, m.Confidence)
		return &Reply{Outcome: OutcomeAnswer, Message: pending}, nil

	default:
		entries := make([]transcript.MatchEntry, len(result.Matches))
		for i, m := range result.Matches {
			entries[i] = transcript.MatchEntry{
				Keyword:    m.Keyword,
				Confidence: m.Confidence,
				Answer:     m.Answer,
			}
		}
		list := transcript.NewMatchList(entries)
		s.transcript.Resolve(pending, list.HTML())
		return &Reply{Outcome: OutcomeMatches, Matches: list, Message: pending}, nil
	}
}
