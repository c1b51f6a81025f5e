package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askDocumentsTool defines the ask_documents MCP tool.
var askDocumentsTool = mcp.NewTool("ask_documents",
	mcp.WithDescription("Ask a question against the stored documents. Returns ranked keyword matches with confidence scores and their answers."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("Natural language question"),
	),
	mcp.WithString("document",
		mcp.Description("Document to answer from; required when more than one document is stored"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of matches to return"),
	),
)

// listDocumentsTool defines the list_documents MCP tool.
var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List the documents available to ask_documents."),
)
