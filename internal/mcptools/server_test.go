package mcptools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/saju-api/internal/calendar"
	"github.com/zapponejosh/saju-api/internal/dateadapter"
)

func newTestService(t *testing.T) *calendar.Service {
	t.Helper()
	svc, err := calendar.NewService(dateadapter.BackendStd, calendar.Defaults{
		Timezone:  "Asia/Seoul",
		Longitude: 126.9778,
		Preset:    "standard",
	})
	require.NoError(t, err)
	return svc
}

// connect wires a client to a fresh server over in-memory transports.
func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(newTestService(t), "test")
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientSession.Close() })

	return clientSession
}

// callTool invokes name and returns the result text.
func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text, res.IsError
}

func TestListTools(t *testing.T) {
	cs := connect(t)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.NotNil(t, tool.InputSchema, tool.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"get_saju", "lunar_to_solar", "solar_terms", "solar_to_lunar"}, names)
}

func TestGetSaju(t *testing.T) {
	cs := connect(t)

	text, isErr := callTool(t, cs, "get_saju", map[string]any{
		"date":         "1990-01-15",
		"time":         "23:00",
		"gender":       "male",
		"current_year": 2024,
	})
	require.False(t, isErr, text)

	var chart struct {
		Birth  calendar.Birth `json:"birth"`
		Result struct {
			Pillars struct {
				Year, Month, Day, Hour string
			} `json:"pillars"`
			MajorLuck struct {
				Direction string `json:"direction"`
				StartAge  int    `json:"start_age"`
			} `json:"major_luck"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &chart))

	p := chart.Result.Pillars
	assert.Equal(t, "己巳 丁丑 庚辰 丙子", strings.Join([]string{p.Year, p.Month, p.Day, p.Hour}, " "))
	assert.Equal(t, "backward", chart.Result.MajorLuck.Direction)
	assert.Equal(t, 3, chart.Result.MajorLuck.StartAge)
	assert.Equal(t, "Asia/Seoul", chart.Birth.Timezone)
}

func TestGetSajuErrors(t *testing.T) {
	cs := connect(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{
			name: "invalid gender",
			args: map[string]any{"date": "1990-01-15", "time": "23:00", "gender": "x"},
			want: "gender must be male or female",
		},
		{
			name: "bad time",
			args: map[string]any{"date": "1990-01-15", "time": "late", "gender": "female"},
			want: "invalid input",
		},
		{
			name: "out of range",
			args: map[string]any{"date": "1880-01-15", "time": "12:00", "gender": "female"},
			want: "date out of supported range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := callTool(t, cs, "get_saju", tt.args)
			assert.True(t, isErr)
			assert.Contains(t, text, "get_saju: ")
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestCalendarTools(t *testing.T) {
	cs := connect(t)

	text, isErr := callTool(t, cs, "solar_to_lunar", map[string]any{"date": "2024-02-10"})
	require.False(t, isErr, text)
	var conv calendar.LunarConversion
	require.NoError(t, json.Unmarshal([]byte(text), &conv))
	assert.Equal(t, 1, conv.Lunar.Month)
	assert.Equal(t, 1, conv.Lunar.Day)
	assert.Equal(t, "甲辰", conv.DayPillar.String())

	text, isErr = callTool(t, cs, "lunar_to_solar", map[string]any{"date": "2023-02-01", "leap": true})
	require.False(t, isErr, text)
	require.NoError(t, json.Unmarshal([]byte(text), &conv))
	assert.Equal(t, "2023-03-22", conv.Solar)

	text, isErr = callTool(t, cs, "lunar_to_solar", map[string]any{"date": "2024-02-01", "leap": true})
	assert.True(t, isErr)
	assert.Contains(t, text, "invalid lunar date")
}

func TestSolarTermsTool(t *testing.T) {
	cs := connect(t)

	text, isErr := callTool(t, cs, "solar_terms", map[string]any{"year": 2024, "timezone": "UTC"})
	require.False(t, isErr, text)

	var table calendar.TermsTable
	require.NoError(t, json.Unmarshal([]byte(text), &table))
	require.Len(t, table.Terms, 24)
	assert.Equal(t, "立春", table.Terms[2].Hanja)
	assert.Equal(t, "UTC", table.Timezone)

	text, isErr = callTool(t, cs, "solar_terms", map[string]any{"year": 1800})
	assert.True(t, isErr)
	assert.Contains(t, text, "out of supported range")
}

func TestHTTPHandler(t *testing.T) {
	server := NewServer(newTestService(t), "test")
	ts := httptest.NewServer(HTTPHandler(server))
	defer ts.Close()

	ctx := context.Background()
	client := mcp.NewClient(&mcp.Implementation{Name: "http-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: ts.URL, HTTPClient: http.DefaultClient}, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "solar_to_lunar",
		Arguments: map[string]any{"date": "1990-01-15"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, `"day_pillar":"庚辰"`)
}
