// Package mcptools exposes the Doma operations as MCP tools
package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"domamarket/internal/core/version"
	perr "domamarket/internal/platform/errors"
)

// Registration pairs a tool with its handler
type Registration struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

// RegisterAll adds every registration to s
func RegisterAll(s *server.MCPServer, regs []Registration) {
	for _, r := range regs {
		s.AddTool(r.Tool, r.Handler)
	}
}

// NewServer returns an MCP server carrying every tool built from d
func NewServer(d Deps) *server.MCPServer {
	s := server.NewMCPServer("doma-mcp", version.Info("doma-mcp").Version, server.WithToolCapabilities(false))
	RegisterAll(s, Tools(d))
	return s
}

// jsonResult renders v as indented JSON text
func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

// errorResult carries the error class and message; tool errors never fail the call itself
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", perr.CodeOf(err), err))
}
