// Package mcptools exposes the saju calculator as Model Context Protocol
// tools, served over stdio by the CLI and over streamable HTTP by the API.
package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zapponejosh/saju-api/internal/calendar"
	"github.com/zapponejosh/saju-api/internal/logger"
)

// ServerName identifies this implementation to MCP clients.
const ServerName = "saju"

// NewServer creates an MCP server with every calculator tool registered.
func NewServer(svc *calendar.Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	t := &tools{svc: svc}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_saju",
		Description: "Calculate a four pillars (saju) chart: pillars, ten gods, element counts, day master strength, relations, useful god, solar terms, major and yearly luck.",
	}, t.getSaju)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "solar_to_lunar",
		Description: "Convert a Gregorian date (1900-2100) to the Korean lunar calendar and give its day pillar.",
	}, t.solarToLunar)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lunar_to_solar",
		Description: "Convert a Korean lunar date to the Gregorian calendar. Set leap for a leap month.",
	}, t.lunarToSolar)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "solar_terms",
		Description: "List the 24 solar terms of a year with their start times in a time zone.",
	}, t.solarTerms)

	return server
}

// HTTPHandler serves server over the streamable HTTP transport.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

// ServeStdio runs server on stdin/stdout until the client disconnects or
// ctx is cancelled.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	logger.Info(ctx, "serving MCP over stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}
