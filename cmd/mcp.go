package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"tailor/internal/retrieval"
	"tailor/internal/store"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing corpus search tools",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	st, err := openStore(newClient())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	s := mcpserver.NewMCPServer("tailor", "1.0.0", mcpserver.WithToolCapabilities(false))

	s.AddTool(searchBackgroundTool(), makeSearchHandler(st))
	s.AddTool(getContextTool(), makeContextHandler(st))
	s.AddTool(corpusStatusTool(), makeStatusHandler(st))

	return mcpserver.ServeStdio(s)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func searchBackgroundTool() mcp.Tool {
	return mcp.NewTool("search_background",
		mcp.WithDescription("Semantically search the personal document corpus (past resumes, work-experience notes, reference material). Returns relevant chunks with source and document type."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language query, typically requirements from a job posting"),
		),
		mcp.WithNumber("k",
			mcp.Description("Maximum number of chunks to return (default 12)"),
		),
		mcp.WithString("doc_type",
			mcp.Description("Optional filter: resume, experience, or book"),
		),
	)
}

func getContextTool() mcp.Tool {
	return mcp.NewTool("get_context",
		mcp.WithDescription("Retrieve a labeled context string for a job description, with keyword-augmented search, ready to paste into a generation prompt."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("job_description",
			mcp.Required(),
			mcp.Description("Full job description text"),
		),
		mcp.WithNumber("k",
			mcp.Description("Maximum number of chunks to include (default 12)"),
		),
	)
}

func corpusStatusTool() mcp.Tool {
	return mcp.NewTool("corpus_status",
		mcp.WithDescription("Report how many chunks are indexed and where the collection lives."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

// --- Handler factories ---

func makeSearchHandler(st *store.Store) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		k := req.GetInt("k", store.DefaultTopK)
		var types []string
		if t := req.GetString("doc_type", ""); t != "" {
			types = []string{t}
		}

		_, previews, err := retrieval.Context(st, query, k, types, true)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		if len(previews) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No results for %q.", query)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "## Results for %q (%d chunks)\n\n", query, len(previews))
		for i, p := range previews {
			fmt.Fprintf(&sb, "### %d. %s (%s)\n\n%s\n\n", i+1, p.Source, p.DocType, p.Content)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func makeContextHandler(st *store.Store) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jd := req.GetString("job_description", "")
		if jd == "" {
			return mcp.NewToolResultError("job_description is required"), nil
		}
		k := req.GetInt("k", store.DefaultTopK)

		block, _, err := retrieval.Context(st, jd, k, nil, true)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("retrieval failed: %v", err)), nil
		}
		if block == "" {
			return mcp.NewToolResultText("The corpus is empty. Run 'tailor ingest <dir>' first."), nil
		}
		return mcp.NewToolResultText(block), nil
	}
}

func makeStatusHandler(st *store.Store) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Collection %q in %s: %d chunks indexed.",
			cfg.Collection, cfg.DataDir, st.Count(),
		)), nil
	}
}
