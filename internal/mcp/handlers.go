package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docchat/docchat/internal/sections"
	"github.com/docchat/docchat/internal/transcript"
)

// handleAskDocuments ranks stored keywords against the question and
// returns the matching answers.
func (s *Server) handleAskDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	limit := request.GetInt("limit", s.topK)
	if limit <= 0 {
		limit = s.topK
	}

	document := request.GetString("document", "")
	if document == "" {
		docs, err := s.store.ListDocuments(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing documents failed: %v", err)), nil
		}
		if len(docs) != 1 {
			return mcp.NewToolResultError("parameter 'document' is required when more than one document is stored; use list_documents"), nil
		}
		document = docs[0]
	}

	stored, err := s.store.ListByDocument(ctx, document)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading topics failed: %v", err)), nil
	}
	if len(stored) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("unknown document %q; use list_documents", document)), nil
	}

	keywords := make([]string, len(stored))
	byKeyword := make(map[string]string, len(stored))
	for i, t := range stored {
		keywords[i] = t.Keyword
		byKeyword[t.Keyword] = t.AnswerHTML
	}

	scored, err := s.matcher.Match(ctx, question, keywords, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("matching failed: %v", err)), nil
	}
	if len(scored) == 0 {
		return mcp.NewToolResultText("No relevant answer found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top matches in %s:\n\n", document)
	for i, sc := range scored {
		fmt.Fprintf(&b, "%d. [%s] %s\n%s\n\n",
			i+1,
			transcript.FormatConfidence(sc.Confidence),
			sc.Keyword,
			sections.FormatReadable(byKeyword[sc.Keyword]),
		)
	}
	return mcp.NewToolResultText(strings.TrimSpace(b.String())), nil
}

// handleListDocuments returns the stored document names.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing documents failed: %v", err)), nil
	}
	if len(docs) == 0 {
		return mcp.NewToolResultText("No documents stored. Run `docchat import` first."), nil
	}
	return mcp.NewToolResultText(strings.Join(docs, "\n")), nil
}
