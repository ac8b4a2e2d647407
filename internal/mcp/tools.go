package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listSectionsTool defines the list_sections MCP tool.
var listSectionsTool = mcp.NewTool("list_sections",
	mcp.WithDescription("List the tutorial sections of the learning dashboard with their slugs and summaries."),
)

// getSectionTool defines the get_section MCP tool.
var getSectionTool = mcp.NewTool("get_section",
	mcp.WithDescription("Get the full markdown body and code snippets of one tutorial section."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Section slug"),
		mcp.Enum("intro", "syntax", "layout", "state", "charts", "files", "params", "deploy"),
	),
)

// searchSectionsTool defines the search_sections MCP tool.
var searchSectionsTool = mcp.NewTool("search_sections",
	mcp.WithDescription("Search the tutorial sections by keywords. Returns the best matching sections."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Keywords to search for"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 3)"),
	),
)

// slowSumTool defines the slow_sum MCP tool.
var slowSumTool = mcp.NewTool("slow_sum",
	mcp.WithDescription("Compute the sum of 0..n-1 with the dashboard's memoized slow sum. The first call for an n is delayed; repeated calls are served from the cache."),
	mcp.WithNumber("n",
		mcp.Required(),
		mcp.Description("Upper bound (exclusive) of the sum"),
	),
)
