// Package mcpserver 通过 MCP 协议把笔记图谱暴露给模型客户端
// Package mcpserver exposes the note graph to MCP clients over stdio
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	internalApp "github.com/Nicoding1996/momentum-notes-sub000/internal/app"
)

// New builds the MCP server with all note graph tools registered
// New 构建注册了全部笔记图谱工具的 MCP 服务器
func New(appContainer *internalApp.App) *server.MCPServer {
	s := server.NewMCPServer(
		"momentum-graph",
		internalApp.Version,
		server.WithToolCapabilities(true),
	)

	RegisterNoteTools(s, appContainer)
	RegisterGraphTools(s, appContainer)

	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// toolError reports a tool failure to the client without failing the protocol call
func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
