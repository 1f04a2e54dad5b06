package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	internalApp "github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
)

// RegisterNoteTools adds the note reading tools to the MCP server.
func RegisterNoteTools(s *server.MCPServer, appContainer *internalApp.App) {
	s.AddTool(listNotesTool(), listNotesHandler(appContainer))
	s.AddTool(getNoteTool(), getNoteHandler(appContainer))
	s.AddTool(searchNotesTool(), searchNotesHandler(appContainer))
}

// --- list_notes ---

func listNotesTool() mcp.Tool {
	return mcp.NewTool("list_notes",
		mcp.WithDescription("List notes in the knowledge graph, newest first. Returns id, title, excerpt and tags per note."),
		mcp.WithNumber("page",
			mcp.Description("Page number, starting at 1"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Notes per page (default 20)"),
		),
	)
}

func listNotesHandler(appContainer *internalApp.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := &dto.NoteListRequest{
			Page:     req.GetInt("page", 1),
			PageSize: req.GetInt("page_size", appContainer.Config().App.DefaultPageSize),
		}

		notes, total, err := appContainer.NoteService.List(ctx, params)
		if err != nil {
			return toolError(err)
		}

		return jsonResult(map[string]any{
			"total": total,
			"notes": notes,
		})
	}
}

// --- get_note ---

func getNoteTool() mcp.Tool {
	return mcp.NewTool("get_note",
		mcp.WithDescription("Get a single note with its full content by id."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Note id"),
		),
	)
}

func getNoteHandler(appContainer *internalApp.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetInt("id", 0)
		if id <= 0 {
			return toolError(fmt.Errorf("id is required"))
		}

		note, err := appContainer.NoteService.Get(ctx, &dto.NoteGetRequest{ID: int64(id)})
		if err != nil {
			return toolError(err)
		}

		return jsonResult(note)
	}
}

// --- search_notes ---

func searchNotesTool() mcp.Tool {
	return mcp.NewTool("search_notes",
		mcp.WithDescription("Search notes by keyword across titles and content."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search keyword"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default 20)"),
		),
	)
}

func searchNotesHandler(appContainer *internalApp.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		params := &dto.NoteListRequest{
			Keyword:  query,
			Page:     1,
			PageSize: req.GetInt("limit", appContainer.Config().App.DefaultPageSize),
		}

		notes, total, err := appContainer.NoteService.List(ctx, params)
		if err != nil {
			return toolError(err)
		}

		return jsonResult(map[string]any{
			"total": total,
			"notes": notes,
		})
	}
}

// jsonResult marshals v for the client, indented for readability
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(out)), nil
}
