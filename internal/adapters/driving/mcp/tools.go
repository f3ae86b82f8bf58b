package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fieldstation/zimline/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find archive entries"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Title   string `json:"title"`
	Path    string `json:"path"`
	Snippet string `json:"snippet,omitempty"`
	Method  string `json:"method"`
}

// ReadInput is the input schema for the read_article tool.
type ReadInput struct {
	Path     string `json:"path" jsonschema:"the archive path of the entry to read"`
	MaxChars int    `json:"max_chars,omitempty" jsonschema:"character budget for the rendered text (0 = unlimited)"`
}

// ReadOutput is the output schema for the read_article tool.
type ReadOutput struct {
	Title     string `json:"title"`
	Path      string `json:"path"`
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
}

// SuggestInput is the input schema for the suggest_titles tool.
type SuggestInput struct {
	Partial string `json:"partial" jsonschema:"partial title to complete"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of suggestions (default 5)"`
}

// SuggestOutput is the output schema for the suggest_titles tool.
type SuggestOutput struct {
	Titles []string `json:"titles"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the archive for entries matching a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_article",
		Description: "Resolve an archive path and return the rendered plain text",
	}, s.handleRead)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_titles",
		Description: "Suggest entry titles for a partial query",
	}, s.handleSuggest)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	hits, err := s.ports.Reader.Search(ctx, input.Query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(hits)),
		Count:   len(hits),
	}
	for i := range hits {
		output.Results[i] = SearchResultOutput{
			Title:   hits[i].Title,
			Path:    hits[i].Path,
			Snippet: hits[i].Snippet,
			Method:  string(hits[i].Method),
		}
	}
	return nil, output, nil
}

// handleRead handles the read_article tool invocation.
func (s *Server) handleRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadInput,
) (*mcp.CallToolResult, ReadOutput, error) {
	doc, err := s.ports.Reader.ResolveAndRender(ctx, input.Path, input.MaxChars)
	if err != nil {
		return nil, ReadOutput{}, err
	}
	return nil, ReadOutput{
		Title:     doc.Title,
		Path:      doc.Path,
		Text:      doc.Text(),
		Truncated: doc.Truncated,
	}, nil
}

// handleSuggest handles the suggest_titles tool invocation.
func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}
	titles, err := s.ports.Reader.Suggest(ctx, input.Partial, limit)
	if err != nil {
		return nil, SuggestOutput{}, err
	}
	return nil, SuggestOutput{Titles: titles}, nil
}
