package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ChartResponse is the response for POST /saju
type ChartResponse struct {
	Birth struct {
		SolarDate string `json:"solar_date"`
		Timezone  string `json:"timezone"`
		Backend   string `json:"backend"`
	} `json:"birth"`
	Result struct {
		Pillars  map[string]string `json:"pillars"`
		Strength struct {
			Level string  `json:"level"`
			Score float64 `json:"score"`
		} `json:"strength"`
		YongShen struct {
			Primary string `json:"primary"`
			Method  string `json:"method"`
		} `json:"yongshen"`
		MajorLuck struct {
			Direction string `json:"direction"`
			StartAge  int    `json:"start_age"`
			Pillars   []struct {
				Pillar    string `json:"pillar"`
				StartYear int    `json:"start_year"`
			} `json:"pillars"`
		} `json:"major_luck"`
		YearlyLuck []struct {
			Year   int    `json:"year"`
			Pillar string `json:"pillar"`
		} `json:"yearly_luck"`
	} `json:"result"`
}

// ConversionResponse is the response for /lunar/{date} and /solar/{date}
type ConversionResponse struct {
	Solar string `json:"solar"`
	Lunar struct {
		Year        int  `json:"year"`
		Month       int  `json:"month"`
		Day         int  `json:"day"`
		IsLeapMonth bool `json:"is_leap_month"`
	} `json:"lunar"`
	DayPillar string `json:"day_pillar"`
	Weekday   string `json:"weekday"`
}

// TermsResponse is the response for /solar-terms/{year}
type TermsResponse struct {
	Year     int    `json:"year"`
	Timezone string `json:"timezone"`
	Terms    []struct {
		Hanja  string `json:"hanja"`
		Korean string `json:"korean"`
		Local  string `json:"local"`
	} `json:"terms"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status      string `json:"status"`
	DateBackend string `json:"date_backend"`
	MCPEnabled  bool   `json:"mcp_enabled"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Saju API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testChart()
	tr.testLunarChart()
	tr.testConversions()
	tr.testSolarTerms()
	tr.testErrorCases()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed [backend=%s, mcp=%t]", health.DateBackend, health.MCPEnabled))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testChart() {
	tr.printSection("Chart (1990-01-15 23:00 Seoul, male)")

	chart, err := tr.chart(map[string]any{
		"date":         "1990-01-15",
		"time":         "23:00",
		"timezone":     "Asia/Seoul",
		"longitude":    126.9778,
		"gender":       "male",
		"current_year": 2024,
	})
	if err != nil {
		tr.recordError("Chart", err.Error())
		return
	}

	p := chart.Result.Pillars
	got := fmt.Sprintf("%s %s %s %s", p["year"], p["month"], p["day"], p["hour"])
	if got == "己巳 丁丑 庚辰 丙子" {
		tr.recordSuccess("Pillars: " + got)
	} else {
		tr.recordError("Chart pillars", fmt.Sprintf("got %s, want 己巳 丁丑 庚辰 丙子", got))
	}

	ml := chart.Result.MajorLuck
	if ml.Direction == "backward" && ml.StartAge == 3 {
		tr.recordSuccess(fmt.Sprintf("Major luck: %s from age %d (%d periods)", ml.Direction, ml.StartAge, len(ml.Pillars)))
	} else {
		tr.recordError("Major luck", fmt.Sprintf("got %s from age %d, want backward from age 3", ml.Direction, ml.StartAge))
	}

	if len(chart.Result.YearlyLuck) > 0 && chart.Result.YearlyLuck[0].Year == 2024 {
		tr.recordSuccess(fmt.Sprintf("Yearly luck: %d years from 2024 (%s)", len(chart.Result.YearlyLuck), chart.Result.YearlyLuck[0].Pillar))
	} else {
		tr.recordError("Yearly luck", "expected list starting at 2024")
	}

	if tr.verbose {
		fmt.Printf("    Strength: %s (%.1f)\n", chart.Result.Strength.Level, chart.Result.Strength.Score)
		fmt.Printf("    Useful god: %s by %s\n", chart.Result.YongShen.Primary, chart.Result.YongShen.Method)
		for _, lp := range ml.Pillars {
			fmt.Printf("      - %d: %s\n", lp.StartYear, lp.Pillar)
		}
		fmt.Println()
	}
}

func (tr *TestRunner) testLunarChart() {
	tr.printSection("Chart from Lunar Input")

	chart, err := tr.chart(map[string]any{
		"date":         "1989-12-19",
		"calendar":     "lunar",
		"time":         "23:00",
		"gender":       "male",
		"current_year": 2024,
	})
	if err != nil {
		tr.recordError("Lunar chart", err.Error())
		return
	}

	if chart.Birth.SolarDate == "1990-01-15" {
		tr.recordSuccess("Lunar 1989-12-19 resolved to 1990-01-15")
	} else {
		tr.recordError("Lunar chart", fmt.Sprintf("solar date %s, want 1990-01-15", chart.Birth.SolarDate))
	}
}

func (tr *TestRunner) testConversions() {
	tr.printSection("Calendar Conversions")

	cases := []struct {
		path  string
		solar string
		lunar string
		leap  bool
	}{
		{"/api/v1/lunar/2024-02-10", "2024-02-10", "2024-01-01", false},
		{"/api/v1/solar/2023-02-01?leap=true", "2023-03-22", "2023-02-01", true},
		{"/api/v1/solar/2023-02-01", "2023-02-20", "2023-02-01", false},
	}

	for _, c := range cases {
		resp, err := tr.get(c.path)
		if err != nil {
			tr.recordError(c.path, err.Error())
			continue
		}

		var conv ConversionResponse
		if err := tr.parseDataAs(resp, &conv); err != nil {
			tr.recordError(c.path, err.Error())
			continue
		}

		lunar := fmt.Sprintf("%04d-%02d-%02d", conv.Lunar.Year, conv.Lunar.Month, conv.Lunar.Day)
		if conv.Solar != c.solar || lunar != c.lunar || conv.Lunar.IsLeapMonth != c.leap {
			tr.recordError(c.path, fmt.Sprintf("got solar %s lunar %s leap %t", conv.Solar, lunar, conv.Lunar.IsLeapMonth))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s: solar %s = lunar %s [%s, %s]", c.path, conv.Solar, lunar, conv.DayPillar, conv.Weekday))
	}
}

func (tr *TestRunner) testSolarTerms() {
	tr.printSection("Solar Terms 2024")

	resp, err := tr.get("/api/v1/solar-terms/2024?timezone=Asia/Seoul")
	if err != nil {
		tr.recordError("Solar terms", err.Error())
		return
	}

	var data TermsResponse
	if err := tr.parseDataAs(resp, &data); err != nil {
		tr.recordError("Solar terms", err.Error())
		return
	}

	if len(data.Terms) != 24 {
		tr.recordError("Solar terms", fmt.Sprintf("got %d terms, want 24", len(data.Terms)))
		return
	}
	ipchun := data.Terms[2]
	if ipchun.Hanja == "立春" && strings.HasPrefix(ipchun.Local, "2024-02-04T17:") {
		tr.recordSuccess("立春 starts " + ipchun.Local)
	} else {
		tr.recordError("Solar terms", fmt.Sprintf("terms[2] = %s at %s", ipchun.Hanja, ipchun.Local))
	}

	if tr.verbose {
		for _, t := range data.Terms {
			fmt.Printf("      - %s %s: %s\n", t.Hanja, t.Korean, t.Local)
		}
		fmt.Println()
	}
}

func (tr *TestRunner) testErrorCases() {
	tr.printSection("Error Cases")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"Invalid gender", http.MethodPost, "/api/v1/saju", map[string]any{"date": "1990-01-15", "time": "12:00", "gender": "x"}, http.StatusBadRequest, "INVALID_GENDER"},
		{"Out of range", http.MethodPost, "/api/v1/saju", map[string]any{"date": "1880-01-01", "time": "12:00", "gender": "male"}, http.StatusUnprocessableEntity, "DATE_OUT_OF_RANGE"},
		{"Bad time zone", http.MethodPost, "/api/v1/saju", map[string]any{"date": "1990-01-15", "time": "12:00", "gender": "male", "timezone": "Mars/Base"}, http.StatusBadRequest, "INVALID_TIMEZONE"},
		{"No leap month", http.MethodGet, "/api/v1/solar/2024-02-01?leap=true", nil, http.StatusBadRequest, "INVALID_LUNAR_DATE"},
		{"Bad date", http.MethodGet, "/api/v1/lunar/not-a-date", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"Unknown route", http.MethodGet, "/api/v1/nothing", nil, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, c := range cases {
		resp, err := tr.do(c.method, c.path, c.body)
		if err != nil {
			tr.recordError(c.name, err.Error())
			continue
		}
		apiResp, err := decode(resp)
		if err != nil {
			tr.recordError(c.name, err.Error())
			continue
		}

		code := ""
		if apiResp.Error != nil {
			code = apiResp.Error.Code
		}
		if resp.StatusCode == c.status && code == c.code {
			tr.recordSuccess(fmt.Sprintf("%s → %d %s", c.name, resp.StatusCode, code))
		} else {
			tr.recordError(c.name, fmt.Sprintf("got %d %s, want %d %s", resp.StatusCode, code, c.status, c.code))
		}
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) chart(body map[string]any) (*ChartResponse, error) {
	resp, err := tr.post("/api/v1/saju", body)
	if err != nil {
		return nil, err
	}
	var chart ChartResponse
	if err := tr.parseDataAs(resp, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	return tr.expectSuccess(tr.do(http.MethodGet, path, nil))
}

func (tr *TestRunner) post(path string, body any) (*APIResponse, error) {
	return tr.expectSuccess(tr.do(http.MethodPost, path, body))
}

func (tr *TestRunner) expectSuccess(resp *http.Response, err error) (*APIResponse, error) {
	if err != nil {
		return nil, err
	}
	apiResp, err := decode(resp)
	if err != nil {
		return nil, err
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return apiResp, nil
}

func (tr *TestRunner) do(method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal error: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}
	return tr.client.Do(req)
}

// decode reads and closes the body of resp.
func decode(resp *http.Response) (*APIResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return &apiResp, nil
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target interface{}) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key sent as X-API-Key")
	verbose := flag.Bool("v", false, "Verbose output (show chart details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
