package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req["question"] != "hi" {
			t.Errorf("question = %q", req["question"])
		}
		if req["document"] != "syllabus" {
			t.Errorf("document = %q", req["document"])
		}

		json.NewEncoder(w).Encode(ChatResult{
			Document: "syllabus",
			Question: "hi",
			Matches: []Match{
				{Keyword: "intro", Confidence: 0.87, Answer: "Welcome!"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "syllabus", 0)
	result, err := c.Ask(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(result.Matches))
	}
	m := result.Matches[0]
	if m.Keyword != "intro" || m.Confidence != 0.87 || m.Answer != "Welcome!" {
		t.Errorf("match = %+v", m)
	}
}

func TestAskStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "upstream down"})
	}))
	defer srv.Close()

	c := New(srv.URL, "", 0)
	_, err := c.Ask(context.Background(), "hi")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d", statusErr.StatusCode)
	}
	if statusErr.Message != "upstream down" {
		t.Errorf("message = %q", statusErr.Message)
	}
}

func TestAskTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection failures

	c := New(srv.URL, "", 0)
	if _, err := c.Ask(context.Background(), "hi"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestAskBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, "", 0)
	if _, err := c.Ask(context.Background(), "hi"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string][]string{"documents": {"a", "b"}})
	}))
	defer srv.Close()

	c := New(srv.URL, "", 0)
	docs, err := c.Documents(context.Background())
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if len(docs) != 2 || docs[0] != "a" {
		t.Errorf("documents = %v", docs)
	}
}
