// Package client implements the HTTP transport to a docchat answering
// service. One request carries one question; there is no retry,
// queueing or concurrent dispatch.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Match is one candidate answer returned by the service. Answer is
// HTML produced by the service and is trusted verbatim downstream.
type Match struct {
	Keyword    string  `json:"keyword"`
	Confidence float64 `json:"confidence"`
	Answer     string  `json:"answer"`
}

// ChatResult is the decoded response for one question.
type ChatResult struct {
	Document     string  `json:"document,omitempty"`
	Question     string  `json:"question,omitempty"`
	ResponseTime float64 `json:"response_time_sec,omitempty"`
	Matches      []Match `json:"top_matches"`
}

type chatRequest struct {
	Question string `json:"question"`
	Document string `json:"document,omitempty"`
}

// StatusError reports a non-2xx response from the answer service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("answer service returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("answer service returned status %d", e.StatusCode)
}

// Client talks to one answering service endpoint. All dependencies are
// explicit constructor parameters.
type Client struct {
	baseURL    string
	document   string
	httpClient *http.Client
}

// New creates a Client for the service at baseURL. document optionally
// pins every question to one stored document. A zero timeout uses the
// default of 30 seconds.
func New(baseURL, document string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		document:   document,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ask sends one question and decodes the ranked matches. A non-2xx
// status yields a *StatusError; transport and decode failures are
// returned wrapped.
func (c *Client) Ask(ctx context.Context, question string) (*ChatResult, error) {
	body, err := json.Marshal(chatRequest{
		Question: question,
		Document: c.document,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	var result ChatResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	return &result, nil
}

// Documents lists the documents available on the service.
func (c *Client) Documents(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/documents", nil)
	if err != nil {
		return nil, fmt.Errorf("create documents request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("documents request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var result struct {
		Documents []string `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode documents response: %w", err)
	}
	return result.Documents, nil
}
