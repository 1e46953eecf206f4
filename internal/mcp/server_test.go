package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hkjudgments/courtextract/internal/batch"
	"github.com/hkjudgments/courtextract/internal/config"
	"github.com/hkjudgments/courtextract/internal/extract"
)

func testConfig(dir string) *config.Config {
	return &config.Config{
		Mode:           "stdio",
		Host:           "127.0.0.1",
		Port:           8080,
		InputDirectory: dir,
		Version:        "1.0.0",
		ServerName:     "test-server",
		LogLevel:       "info",
		MaxFileSize:    1024 * 1024,
		Workers:        1,
		FileTimeout:    5 * time.Second,
	}
}

func TestNewServer(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mcp_server_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
	}{
		{
			name:        "valid stdio mode config",
			config:      testConfig(tempDir),
			expectError: false,
		},
		{
			name: "valid server mode config",
			config: func() *config.Config {
				cfg := testConfig(tempDir)
				cfg.Mode = "server"
				return cfg
			}(),
			expectError: false,
		},
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(tt.config)

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !tt.expectError {
				if server == nil {
					t.Fatal("server should not be nil")
				}
				if server.config != tt.config {
					t.Error("server config not set correctly")
				}
				if server.processor == nil {
					t.Error("processor should be initialized")
				}
				if server.validator == nil {
					t.Error("validator should be initialized")
				}
				if server.scanner == nil {
					t.Error("scanner should be initialized")
				}
				if server.mcpServer == nil {
					t.Error("mcpServer should be initialized")
				}
			}
		})
	}
}

func TestServer_HandleValidateFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mcp_server_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Not a real PDF, so validation should fail
	testFile := filepath.Join(tempDir, "test.pdf")
	if err := os.WriteFile(testFile, make([]byte, 1024), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	server, err := NewServer(testConfig(tempDir))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path": testFile,
			},
		},
	}

	result, err := server.handleValidateFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result == nil {
		t.Fatal("result should not be nil")
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "PDF validation failed") {
		t.Errorf("expected validation to fail, got: %s", resultText)
	}
}

func TestServer_HandleExtractFile_BadPDF(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mcp_extract_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	testFile := filepath.Join(tempDir, "judgment.pdf")
	if err := os.WriteFile(testFile, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	server, err := NewServer(testConfig(tempDir))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path": testFile,
			},
		},
	}

	result, err := server.handleExtractFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result == nil {
		t.Fatal("result should not be nil")
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "failed to open PDF") {
		t.Errorf("expected open failure, got: %s", resultText)
	}
}

func TestServer_HandleExtractDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mcp_extract_dir_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Both files are fake, so the run completes with two failures
	testFiles := []string{"doc1.pdf", "doc2.pdf"}
	for _, filename := range testFiles {
		filePath := filepath.Join(tempDir, filename)
		if err := os.WriteFile(filePath, make([]byte, 1024), 0o644); err != nil {
			t.Fatalf("failed to create test file %s: %v", filename, err)
		}
	}

	server, err := NewServer(testConfig(tempDir))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"directory": tempDir,
			},
		},
	}

	result, err := server.handleExtractDirectory(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result == nil {
		t.Fatal("result should not be nil")
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Court Judgment Extraction Summary") {
		t.Errorf("expected summary header, got: %s", resultText)
	}
	if !strings.Contains(resultText, "Files found:   2") {
		t.Errorf("expected two files found, got: %s", resultText)
	}
}

func TestServer_HandleExtractDirectory_DefaultDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mcp_default_dir_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	server, err := NewServer(testConfig(tempDir))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// No directory argument, so the configured directory is used
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := server.handleExtractDirectory(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result == nil {
		t.Fatal("result should not be nil")
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Files found:   0") {
		t.Errorf("expected empty default directory run, got: %s", resultText)
	}
}

func TestServer_HandleDetectLanguage(t *testing.T) {
	server, err := NewServer(testConfig("/tmp"))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english judgment text",
			text: "IN THE HIGH COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION " +
				"COURT OF FIRST INSTANCE the plaintiff claims against the defendant",
			want: "Language: english",
		},
		{
			name: "chinese judgment text",
			text: "香港特別行政區區域法院民事訴訟案件編號原告人被告人判決書法官聆訊日期頒布判案理由",
			want: "Language: chinese",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := mcp.CallToolRequest{
				Params: mcp.CallToolParams{
					Arguments: map[string]interface{}{
						"text": tt.text,
					},
				},
			}

			result, err := server.handleDetectLanguage(context.Background(), request)
			if err != nil {
				t.Fatalf("handler failed: %v", err)
			}

			resultText := extractTextFromResult(result)
			if resultText != tt.want {
				t.Errorf("handleDetectLanguage() = %q, want %q", resultText, tt.want)
			}
		})
	}
}

func TestServer_HandleServerInfo(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mcp_info_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	testFile := filepath.Join(tempDir, "doc1.pdf")
	if err := os.WriteFile(testFile, make([]byte, 1024), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	server, err := NewServer(testConfig(tempDir))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := server.handleServerInfo(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	for _, want := range []string{
		"test-server v1.0.0",
		tempDir,
		"PDF files in directory: 1",
		"judgment_extract_file",
		"judgment_extract_directory",
		"judgment_detect_language",
		"judgment_validate_file",
		"judgment_server_info",
		"Usage guidance:",
	} {
		if !strings.Contains(resultText, want) {
			t.Errorf("server info should contain %q, got: %s", want, resultText)
		}
	}
}

func TestServer_InvalidArguments(t *testing.T) {
	server, err := NewServer(testConfig("/tmp"))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	emptyRequest := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	handlers := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		{"ExtractFile", server.handleExtractFile},
		{"DetectLanguage", server.handleDetectLanguage},
		{"ValidateFile", server.handleValidateFile},
	}

	for _, h := range handlers {
		t.Run(h.name, func(t *testing.T) {
			result, err := h.handler(context.Background(), emptyRequest)
			if err != nil {
				t.Errorf("handler should not return error, got: %v", err)
			}
			if result == nil {
				t.Fatal("result should not be nil")
			}

			resultText := extractTextFromResult(result)
			if !strings.Contains(resultText, "required") && !strings.Contains(resultText, "missing") &&
				!strings.Contains(resultText, "error") {
				t.Errorf("expected error message for missing arguments, got: %s", resultText)
			}
		})
	}
}

func TestFormatMethods(t *testing.T) {
	server, err := NewServer(testConfig("/tmp"))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	rec := extract.Record{
		FileName:     "HCA001234_2023.pdf",
		FilePath:     "/tmp/HCA001234_2023.pdf",
		CaseNumber:   "HCA 1234/2023",
		Language:     "english",
		DocumentType: "judgment",
		CourtName:    "High Court",
	}

	formatted := server.formatRecord(rec)
	if !strings.Contains(formatted, "Successfully extracted fields from: /tmp/HCA001234_2023.pdf") {
		t.Error("formatted record should contain the file path")
	}
	if !strings.Contains(formatted, "Language: english") {
		t.Error("formatted record should contain the language")
	}
	if !strings.Contains(formatted, `"case_number": "HCA 1234/2023"`) {
		t.Error("formatted record should contain the JSON record")
	}

	result := &batch.Result{
		RunID:   "run-1",
		Records: []extract.Record{rec},
		Summary: batch.Summarize([]extract.Record{rec}, nil, time.Second),
	}

	formatted = server.formatDirectoryResult(result)
	if !strings.Contains(formatted, "Court Judgment Extraction Summary") {
		t.Error("formatted directory result should contain the summary header")
	}
	if !strings.Contains(formatted, "Records:") {
		t.Error("formatted directory result should list the records")
	}
	if !strings.Contains(formatted, `"case_number": "HCA 1234/2023"`) {
		t.Error("formatted directory result should contain the record JSON")
	}
}

func TestAvailableTools(t *testing.T) {
	tools := availableTools()
	if len(tools) != 5 {
		t.Fatalf("expected 5 tools, got %d", len(tools))
	}

	wantNames := []string{
		"judgment_extract_file",
		"judgment_extract_directory",
		"judgment_detect_language",
		"judgment_validate_file",
		"judgment_server_info",
	}
	for i, want := range wantNames {
		if tools[i].Name != want {
			t.Errorf("tools[%d].Name = %q, want %q", i, tools[i].Name, want)
		}
		if tools[i].Description == "" || tools[i].Description == "Tool description not available" {
			t.Errorf("tools[%d] is missing its description", i)
		}
		if tools[i].Usage == "" {
			t.Errorf("tools[%d] is missing its usage", i)
		}
		if tools[i].Parameters == "" {
			t.Errorf("tools[%d] is missing its parameters", i)
		}
	}
}

// Helper function to extract text from a CallToolResult
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}
