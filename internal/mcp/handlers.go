package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/learndash/internal/compute"
	"github.com/ziadkadry99/learndash/internal/lessons"
)

func (s *Server) handleListSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, sec := range s.library.Sections() {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", sec.Label(), sec.Slug, sec.Summary))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleGetSection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slug"), nil
	}

	rendered, ok := s.library.Get(slug)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no section with slug %q", slug)), nil
	}
	return mcp.NewToolResultText(formatSection(rendered.Section)), nil
}

func (s *Server) handleSearchSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	if s.index == nil {
		return mcp.NewToolResultError("search is not available"), nil
	}

	limit := request.GetInt("limit", 3)
	hits, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(hits) == 0 {
		return mcp.NewToolResultText("No matching sections."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d section(s):\n", len(hits)))
	for _, h := range hits {
		sb.WriteString(fmt.Sprintf("- %s (%s, %.1f%%): %s\n", h.Title, h.Slug, h.Similarity*100, h.Summary))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSlowSum(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := request.RequireInt("n")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: n"), nil
	}

	res, err := s.summer.Sum(ctx, n)
	if errors.Is(err, compute.ErrOutOfRange) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sum failed: %v", err)), nil
	}

	source := "computed"
	if res.Cached {
		source = "cached"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Sum of 0 to %d: %s (%s)", res.N-1, compute.Commas(res.Sum), source)), nil
}

// formatSection renders a section as markdown with its snippets fenced.
func formatSection(sec lessons.Section) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s %s\n\n", sec.Icon, sec.Title))
	sb.WriteString(sec.Body)
	for _, sn := range sec.Snippets {
		sb.WriteString(fmt.Sprintf("\n\n## %s\n\n```%s\n%s\n```\n", sn.Title, sn.Language, strings.TrimRight(sn.Code, "\n")))
	}
	return sb.String()
}
