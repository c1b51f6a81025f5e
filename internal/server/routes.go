package server

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/docchat/docchat/internal/client"
	"github.com/docchat/docchat/internal/sections"
)

// chatRequest is the canonical request body for POST /api/chat.
type chatRequest struct {
	Question string `json:"question"`
	Document string `json:"document,omitempty"`
}

// handleChat answers one question with ranked matches.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, status, errMsg := s.answer(r.Context(), req)
	if errMsg != "" {
		writeError(w, status, errMsg)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// answer runs the matching pipeline for one question. It is shared by
// the HTTP and WebSocket chat surfaces. On failure it returns an HTTP
// status and message.
func (s *Server) answer(ctx context.Context, req chatRequest) (*client.ChatResult, int, string) {
	start := time.Now()

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, http.StatusBadRequest, "question is required"
	}

	document, status, errMsg := s.resolveDocument(ctx, req.Document)
	if errMsg != "" {
		return nil, status, errMsg
	}

	stored, err := s.store.ListByDocument(ctx, document)
	if err != nil {
		log.Printf("server: listing topics for %s: %v", document, err)
		return nil, http.StatusInternalServerError, "internal error"
	}

	keywords := make([]string, len(stored))
	byKeyword := make(map[string]string, len(stored))
	for i, t := range stored {
		keywords[i] = t.Keyword
		byKeyword[t.Keyword] = t.AnswerHTML
	}

	scored, err := s.matcher.Match(ctx, question, keywords, s.cfg.TopK)
	if err != nil {
		log.Printf("server: matching %q: %v", question, err)
		return nil, http.StatusInternalServerError, "internal error"
	}

	matches := make([]client.Match, len(scored))
	for i, sc := range scored {
		matches[i] = client.Match{
			Keyword:    sc.Keyword,
			Confidence: sc.Confidence,
			Answer:     sections.FormatReadable(byKeyword[sc.Keyword]),
		}
	}

	return &client.ChatResult{
		Document:     document,
		Question:     question,
		ResponseTime: math.Round(time.Since(start).Seconds()*100) / 100,
		Matches:      matches,
	}, 0, ""
}

// resolveDocument picks the document to answer from: the requested
// one, the configured default, or the only stored document.
func (s *Server) resolveDocument(ctx context.Context, requested string) (string, int, string) {
	document := strings.TrimSpace(requested)
	if document == "" {
		document = s.cfg.DefaultDocument
	}
	if document == "" {
		docs, err := s.store.ListDocuments(ctx)
		if err != nil {
			log.Printf("server: listing documents: %v", err)
			return "", http.StatusInternalServerError, "internal error"
		}
		if len(docs) != 1 {
			return "", http.StatusBadRequest, "document is required"
		}
		document = docs[0]
	}

	ok, err := s.store.HasDocument(ctx, document)
	if err != nil {
		log.Printf("server: checking document %s: %v", document, err)
		return "", http.StatusInternalServerError, "internal error"
	}
	if !ok {
		return "", http.StatusNotFound, "unknown document: "+document
	}
	return document, 0, ""
}

// handleDocuments lists the stored document names.
func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.ListDocuments(r.Context())
	if err != nil {
		log.Printf("server: listing documents: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if docs == nil {
		docs = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"documents": docs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
