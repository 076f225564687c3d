package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalRequests = 240 // Total number of request records to seed
	errorStride   = 5   // Every errorStride-th record carries one failed line
	okVolumeBytes = 1000
)

var (
	days  = []string{"2025-12-27", "2025-12-28"}
	users = []string{"gfz", "resif", "iris", "koeri"}
)

// ### End - fixed configs

type streamID struct {
	Network  string `json:"network"`
	Station  string `json:"station"`
	Location string `json:"location"`
	Channel  string `json:"channel"`
}

type lineStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	VolumeID  string `json:"volumeId"`
	SizeBytes int64  `json:"sizeBytes"`
}

type statusLine struct {
	VolumeID  string `json:"volumeId"`
	Status    string `json:"status"`
	SizeBytes int64  `json:"sizeBytes"`
	Message   string `json:"message"`
}

type requestLine struct {
	Stream      streamID   `json:"stream"`
	Constraints string     `json:"constraints"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	Restricted  bool       `json:"restricted"`
	Status      lineStatus `json:"status"`
}

type requestSummary struct {
	TotalLineCount           int64 `json:"totalLineCount"`
	OkLineCount              int64 `json:"okLineCount"`
	AverageTimeWindowSeconds int64 `json:"averageTimeWindowSeconds"`
}

type requestRecord struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	UserID       string         `json:"userId"`
	UserIP       string         `json:"userIp"`
	ClientID     string         `json:"clientId"`
	ClientIP     string         `json:"clientIp"`
	CreatedAt    string         `json:"createdAt"`
	Label        string         `json:"label"`
	Header       string         `json:"header"`
	Status       string         `json:"status"`
	Message      string         `json:"message"`
	Summary      requestSummary `json:"summary"`
	StatusLines  []statusLine   `json:"statusLines"`
	RequestLines []requestLine  `json:"requestLines"`
}

type summaryResponse struct {
	RequestCount      int    `json:"requestCount"`
	ErrorRequestCount int    `json:"errorRequestCount"`
	ErrorCount        int64  `json:"errorCount"`
	UserCount         int    `json:"userCount"`
	StationCount      int    `json:"stationCount"`
	TotalLineCount    int64  `json:"totalLineCount"`
	TotalSizeBytes    int64  `json:"totalSizeBytes"`
	TotalSizeDisplay  string `json:"totalSizeDisplay"`
}

type requestsResponse struct {
	OnlyErrors bool `json:"onlyErrors"`
	Requests   []struct {
		ID string `json:"id"`
	} `json:"requests"`
}

type chartResponse struct {
	Dimension string `json:"dimension"`
	Buckets   []struct {
		Key     string `json:"key"`
		Label   string `json:"label"`
		Metrics struct {
			RequestCount int64   `json:"requestCount"`
			LineCount    int64   `json:"lineCount"`
			ErrorCount   int64   `json:"errorCount"`
			VolumeMB     float64 `json:"volumeMb"`
		} `json:"metrics"`
	} `json:"buckets"`
	Total struct {
		RequestCount int64 `json:"requestCount"`
		LineCount    int64 `json:"lineCount"`
		ErrorCount   int64 `json:"errorCount"`
	} `json:"total"`
}

// main runs the e2e scenario: 001_summary_report
//
// This scenario tests the end-to-end flow of report generation over stored
// request records. It seeds 240 deterministic request documents directly into
// the file storage directory (the same layout the store writes), then queries
// the summary, requests and chart report endpoints and verifies the rollup
// numbers.
//
// What it tests:
//   - Request document discovery and coarse time-range pruning in the file store
//   - Summary rollups across users, stations and volumes via GET /reports/summary
//   - Error-only selection via GET /reports/requests?onlyErrors=yes
//   - Dense daily bucket series and totals via GET /reports/chart
//
// Expected results:
//   - Summary: 240 requests from 4 users over 3 stations, 720 lines,
//     48 error requests with one failed line each, 192000 bytes delivered
//   - Requests (onlyErrors=yes): exactly the 48 records with a failed line
//   - Chart (daily): two buckets of 120 requests / 360 lines each
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080"    // Base URL of the report API server
	fileStorageDir := ".tmp/file-storage" // File storage directory path relative to project root
	wantCleanFileStorage := true          // If true, clean up file storage directory before running scenario

	// Get project root directory by looking for go.mod file
	// Start from current working directory and walk up until we find go.mod
	projectRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}

	// Walk up the directory tree to find go.mod
	for i := 0; i < 10; i++ {
		goModPath := filepath.Join(projectRoot, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			// Reached filesystem root without finding go.mod
			fmt.Fprintf(os.Stderr, "ERROR: Could not find go.mod file. Please run from project root or set FILE_STORAGE_DIR to absolute path\n")
			os.Exit(1)
		}
		projectRoot = parent
	}

	// Resolve file storage directory relative to project root
	storagePath := filepath.Join(projectRoot, fileStorageDir)
	storagePath, err = filepath.Abs(storagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to resolve file storage path: %v\n", err)
		os.Exit(1)
	}

	// Clean up file storage if requested
	if wantCleanFileStorage {
		fmt.Printf("Cleaning file storage directory: %s\n", storagePath)
		if err := os.RemoveAll(storagePath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean file storage directory: %v\n", err)
		} else {
			fmt.Printf("File storage directory cleaned\n")
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_summary_report")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("FILE_STORAGE_DIR: %s\n", fileStorageDir)
	fmt.Printf("FILE_STORAGE_PATH: %s\n", storagePath)
	fmt.Printf("WANT_CLEAN_FILE_STORAGE: %v\n", wantCleanFileStorage)
	fmt.Printf("TOTAL_REQUESTS: %d\n", totalRequests)
	fmt.Println()

	// Seed all request documents
	fmt.Printf("Seeding %d request documents...\n", totalRequests)
	requestsDir := filepath.Join(storagePath, "requests")
	if err := os.MkdirAll(requestsDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create requests directory: %v\n", err)
		os.Exit(1)
	}

	errorRequests := 0
	for i := 0; i < totalRequests; i++ {
		record := generateRecord(i)
		if i%errorStride == 0 {
			errorRequests++
		}

		jsonData, err := json.Marshal(record)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to marshal record %s: %v\n", record.ID, err)
			os.Exit(1)
		}

		// Same key layout the store writes: requests/<YYYY-MM-DD>_<id>.json
		name := fmt.Sprintf("%s_%s.json", days[i%len(days)], record.ID)
		if err := os.WriteFile(filepath.Join(requestsDir, name), jsonData, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to write record %s: %v\n", record.ID, err)
			os.Exit(1)
		}
	}
	fmt.Printf("Seeded %d documents (%d with a failed line)\n", totalRequests, errorRequests)
	fmt.Println()

	rangeArgs := url.Values{}
	rangeArgs.Set("startTime", "2025-12-27")
	rangeArgs.Set("endTime", "2025-12-29")

	failures := 0

	// Check 1: summary report
	fmt.Println("Checking GET /reports/summary...")
	var summary summaryResponse
	if err := getReport(baseURL, "/reports/summary", rangeArgs, &summary); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Summary report failed: %v\n", err)
		os.Exit(1)
	}
	failures += expectInt("summary.requestCount", summary.RequestCount, totalRequests)
	failures += expectInt("summary.errorRequestCount", summary.ErrorRequestCount, errorRequests)
	failures += expectInt("summary.errorCount", int(summary.ErrorCount), errorRequests)
	failures += expectInt("summary.userCount", summary.UserCount, len(users))
	failures += expectInt("summary.stationCount", summary.StationCount, 3)
	failures += expectInt("summary.totalLineCount", int(summary.TotalLineCount), totalRequests*3)
	failures += expectInt("summary.totalSizeBytes", int(summary.TotalSizeBytes), (totalRequests-errorRequests)*okVolumeBytes)
	fmt.Printf("summary.totalSizeDisplay: %s\n", summary.TotalSizeDisplay)
	fmt.Println()

	// Check 2: error-only request listing
	fmt.Println("Checking GET /reports/requests?onlyErrors=yes...")
	errorArgs := url.Values{}
	errorArgs.Set("startTime", "2025-12-27")
	errorArgs.Set("endTime", "2025-12-29")
	errorArgs.Set("onlyErrors", "yes")
	var errorList requestsResponse
	if err := getReport(baseURL, "/reports/requests", errorArgs, &errorList); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Requests report failed: %v\n", err)
		os.Exit(1)
	}
	failures += expectInt("requests.count", len(errorList.Requests), errorRequests)
	if !errorList.OnlyErrors {
		fmt.Fprintf(os.Stderr, "FAIL: requests.onlyErrors: got false, want true\n")
		failures++
	}
	fmt.Println()

	// Check 3: daily chart series
	fmt.Println("Checking GET /reports/chart...")
	var chart chartResponse
	if err := getReport(baseURL, "/reports/chart", rangeArgs, &chart); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Chart report failed: %v\n", err)
		os.Exit(1)
	}
	failures += expectInt("chart.buckets", len(chart.Buckets), len(days))
	failures += expectInt("chart.total.requestCount", int(chart.Total.RequestCount), totalRequests)
	failures += expectInt("chart.total.lineCount", int(chart.Total.LineCount), totalRequests*3)
	failures += expectInt("chart.total.errorCount", int(chart.Total.ErrorCount), errorRequests)
	for i, bucket := range chart.Buckets {
		if i < len(days) && bucket.Key != days[i] {
			fmt.Fprintf(os.Stderr, "FAIL: chart.buckets[%d].key: got %q, want %q\n", i, bucket.Key, days[i])
			failures++
			continue
		}
		failures += expectInt(fmt.Sprintf("chart.buckets[%d].requestCount", i), int(bucket.Metrics.RequestCount), totalRequests/len(days))
	}
	fmt.Println()

	// Print statistics
	fmt.Println("=== Statistics ===")
	fmt.Printf("Documents seeded: %d\n", totalRequests)
	fmt.Printf("Error documents: %d\n", errorRequests)
	fmt.Printf("Checks failed: %d\n", failures)

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d checks failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

// generateRecord builds the i-th deterministic request document. Records
// alternate between the two seeded days, cycle through the four users and the
// three stations, and every errorStride-th record fails its first line and
// its volume.
func generateRecord(i int) requestRecord {
	isError := i%errorStride == 0
	day := days[i%len(days)]
	hour := (i / len(days)) % 24
	minute := i % 60
	createdAt := fmt.Sprintf("%sT%02d:%02d:00Z", day, hour, minute)

	streams := []streamID{
		{Network: "GE", Station: "APE", Location: "", Channel: "BHZ"},
		{Network: "GE", Station: "KARP", Location: "00", Channel: "BHN"},
		{Network: "XX", Station: "TMP", Location: "", Channel: "HHZ"},
	}

	lineStart, _ := time.Parse(time.RFC3339, createdAt)
	lines := make([]requestLine, 0, len(streams))
	for j, stream := range streams {
		status := lineStatus{Status: "OK", Message: "OK", VolumeID: "sdsreq", SizeBytes: okVolumeBytes / int64(len(streams))}
		if isError && j == 0 {
			status = lineStatus{Status: "ERROR", Message: "no access", VolumeID: "sdsreq"}
		}
		lines = append(lines, requestLine{
			Stream: stream,
			Start:  lineStart.Format(time.RFC3339),
			End:    lineStart.Add(100 * time.Second).Format(time.RFC3339),
			Status: status,
		})
	}

	volume := statusLine{VolumeID: "sdsreq", Status: "OK", SizeBytes: okVolumeBytes, Message: "OK"}
	okLines := int64(len(streams))
	if isError {
		volume = statusLine{VolumeID: "sdsreq", Status: "ERROR", Message: "no access"}
		okLines--
	}

	return requestRecord{
		ID:        fmt.Sprintf("%06d", i+1),
		Type:      "WAVEFORM",
		UserID:    users[i%len(users)],
		UserIP:    fmt.Sprintf("10.0.%d.%d", i%4, i%250),
		ClientIP:  "192.168.1.1",
		CreatedAt: createdAt,
		Label:     "fdsnws",
		Status:    "END",
		Message:   "request complete",
		Summary: requestSummary{
			TotalLineCount:           int64(len(streams)),
			OkLineCount:              okLines,
			AverageTimeWindowSeconds: 100,
		},
		StatusLines:  []statusLine{volume},
		RequestLines: lines,
	}
}

func getReport(baseURL, path string, args url.Values, out interface{}) error {
	reportURL := baseURL + path + "?" + args.Encode()

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(reportURL)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func expectInt(name string, got, want int) int {
	if got != want {
		fmt.Fprintf(os.Stderr, "FAIL: %s: got %d, want %d\n", name, got, want)
		return 1
	}
	fmt.Printf("OK: %s = %d\n", name, got)
	return 0
}
