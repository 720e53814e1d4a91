package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zapponejosh/saju-api/internal/calendar"
	"github.com/zapponejosh/saju-api/internal/logger"
)

type tools struct {
	svc *calendar.Service
}

// DateArgs names a single calendar date.
type DateArgs struct {
	Date string `json:"date" jsonschema:"date as YYYY-MM-DD"`
}

// LunarArgs names a lunar date.
type LunarArgs struct {
	Date string `json:"date" jsonschema:"lunar date as YYYY-MM-DD"`
	Leap bool   `json:"leap,omitempty" jsonschema:"the month is the leap month of that number"`
}

// TermsArgs selects a year of solar terms.
type TermsArgs struct {
	Year     int    `json:"year" jsonschema:"Gregorian year between 1900 and 2100"`
	Timezone string `json:"timezone,omitempty" jsonschema:"IANA zone for local start times"`
}

// Outputs are typed any; a failed call returns an IsError result and no
// structured content.

func (t *tools) getSaju(ctx context.Context, _ *mcp.CallToolRequest, in calendar.BirthInput) (*mcp.CallToolResult, any, error) {
	chart, err := t.svc.Chart(ctx, in)
	if err != nil {
		return toolError(ctx, "get_saju", err), nil, nil
	}
	return nil, chart, nil
}

func (t *tools) solarToLunar(ctx context.Context, _ *mcp.CallToolRequest, in DateArgs) (*mcp.CallToolResult, any, error) {
	conv, err := t.svc.SolarToLunar(ctx, in.Date)
	if err != nil {
		return toolError(ctx, "solar_to_lunar", err), nil, nil
	}
	return nil, conv, nil
}

func (t *tools) lunarToSolar(ctx context.Context, _ *mcp.CallToolRequest, in LunarArgs) (*mcp.CallToolResult, any, error) {
	conv, err := t.svc.LunarToSolar(ctx, in.Date, in.Leap)
	if err != nil {
		return toolError(ctx, "lunar_to_solar", err), nil, nil
	}
	return nil, conv, nil
}

func (t *tools) solarTerms(ctx context.Context, _ *mcp.CallToolRequest, in TermsArgs) (*mcp.CallToolResult, any, error) {
	table, err := t.svc.SolarTerms(ctx, in.Year, in.Timezone)
	if err != nil {
		return toolError(ctx, "solar_terms", err), nil, nil
	}
	return nil, table, nil
}

// toolError wraps err in a failed tool result.
func toolError(ctx context.Context, tool string, err error) *mcp.CallToolResult {
	logger.Warn(ctx, "tool call failed", "tool", tool, "error", err)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%s: %v", tool, err)}},
	}
}
