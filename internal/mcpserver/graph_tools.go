package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	internalApp "github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/service"
)

// RegisterGraphTools adds the link graph tools to the MCP server.
func RegisterGraphTools(s *server.MCPServer, appContainer *internalApp.App) {
	s.AddTool(backlinksTool(), backlinksHandler(appContainer))
	s.AddTool(mentionsTool(), mentionsHandler(appContainer))
	s.AddTool(suggestLinksTool(), suggestLinksHandler(appContainer))
}

// requireNoteID reads the note_id argument shared by the graph tools
func requireNoteID(req mcp.CallToolRequest) (int64, error) {
	id := req.GetInt("note_id", 0)
	if id <= 0 {
		return 0, fmt.Errorf("note_id is required")
	}
	return int64(id), nil
}

// --- get_backlinks ---

func backlinksTool() mcp.Tool {
	return mcp.NewTool("get_backlinks",
		mcp.WithDescription("List notes whose [[wiki links]] point at the given note, with the surrounding context of each link."),
		mcp.WithNumber("note_id",
			mcp.Required(),
			mcp.Description("Target note id"),
		),
	)
}

func backlinksHandler(appContainer *internalApp.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteID, err := requireNoteID(req)
		if err != nil {
			return toolError(err)
		}

		items, err := appContainer.NoteLinkService.GetBacklinks(ctx, noteID)
		if err != nil {
			return toolError(err)
		}

		return jsonResult(map[string]any{
			"noteId":    noteID,
			"backlinks": items,
		})
	}
}

// --- get_unlinked_mentions ---

func mentionsTool() mcp.Tool {
	return mcp.NewTool("get_unlinked_mentions",
		mcp.WithDescription("Find notes that mention the given note's title in plain text without linking to it. Each mention carries its text offset and context so a link can be inserted."),
		mcp.WithNumber("note_id",
			mcp.Required(),
			mcp.Description("Note id whose title to look for"),
		),
	)
}

func mentionsHandler(appContainer *internalApp.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteID, err := requireNoteID(req)
		if err != nil {
			return toolError(err)
		}

		items, err := appContainer.NoteLinkService.FindUnlinkedMentions(ctx, noteID)
		if err != nil {
			return toolError(err)
		}

		return jsonResult(map[string]any{
			"noteId":   noteID,
			"mentions": items,
		})
	}
}

// --- suggest_links ---

func suggestLinksTool() mcp.Tool {
	return mcp.NewTool("suggest_links",
		mcp.WithDescription("Generate connection suggestions for a note. Combines co-mention ranking with the configured language model; requires ai.enable in the service config."),
		mcp.WithNumber("note_id",
			mcp.Required(),
			mcp.Description("Note id to suggest connections for"),
		),
	)
}

func suggestLinksHandler(appContainer *internalApp.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteID, err := requireNoteID(req)
		if err != nil {
			return toolError(err)
		}

		suggestions, err := appContainer.SuggestService.Suggest(ctx, noteID, service.TriggerManual)
		if err != nil {
			return toolError(err)
		}

		return jsonResult(map[string]any{
			"noteId":      noteID,
			"suggestions": dto.SuggestionsFromDomain(suggestions),
		})
	}
}
