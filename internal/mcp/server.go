// Package mcp exposes the judgment extraction engine over the Model
// Context Protocol so agent tooling can extract fields, classify text and
// validate files without shelling out to the batch CLI.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hkjudgments/courtextract/internal/batch"
	"github.com/hkjudgments/courtextract/internal/config"
	"github.com/hkjudgments/courtextract/internal/descriptions"
	"github.com/hkjudgments/courtextract/internal/extract"
	"github.com/hkjudgments/courtextract/internal/pdftext"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	processor *batch.Processor
	validator *pdftext.Validator
	scanner   *pdftext.Scanner
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config: cfg,
		processor: batch.NewProcessor(batch.Options{
			MaxFileSize: cfg.MaxFileSize,
			Workers:     cfg.Workers,
			FileTimeout: cfg.FileTimeout,
		}),
		validator: pdftext.NewValidator(cfg.MaxFileSize),
		scanner:   pdftext.NewScanner(cfg.MaxFileSize),
		mcpServer: mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		"judgment_extract_file",
		mcp.WithDescription("Extract structured case fields from a single judgment PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the judgment PDF file"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractDirectoryTool := mcp.NewTool(
		"judgment_extract_directory",
		mcp.WithDescription("Extract case fields from every judgment PDF in a directory"),
		mcp.WithString("directory",
			mcp.Description("Directory path to process (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(extractDirectoryTool, s.handleExtractDirectory)

	detectLanguageTool := mcp.NewTool(
		"judgment_detect_language",
		mcp.WithDescription("Classify raw judgment text as English or Chinese"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Judgment text to classify"),
		),
	)
	s.mcpServer.AddTool(detectLanguageTool, s.handleDetectLanguage)

	validateFileTool := mcp.NewTool(
		"judgment_validate_file",
		mcp.WithDescription("Validate if a file is a readable PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	serverInfoTool := mcp.NewTool(
		"judgment_server_info",
		mcp.WithDescription("Get server information, available tools, directory contents, and usage guidance"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := s.processor.ProcessFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatRecord(rec)), nil
}

func (s *Server) handleExtractDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.InputDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	result, err := s.processor.ProcessDirectory(ctx, directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDirectoryResult(result)), nil
}

func (s *Server) handleDetectLanguage(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	language := extract.DetectLanguage(text)
	return mcp.NewToolResultText(fmt.Sprintf("Language: %s", language)), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.validator.Validate(path)

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

// Formatting methods
func (s *Server) formatRecord(rec extract.Record) string {
	text := fmt.Sprintf("Successfully extracted fields from: %s\n", rec.FilePath)
	text += fmt.Sprintf("Language: %s\n", rec.Language)
	text += fmt.Sprintf("Document type: %s\n", rec.DocumentType)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return text + fmt.Sprintf("\nFailed to encode record: %v\n", err)
	}
	text += "\nRecord:\n"
	text += string(data)
	return text
}

func (s *Server) formatDirectoryResult(result *batch.Result) string {
	text := result.Summary.Text()

	if len(result.Records) > 0 {
		data, err := json.MarshalIndent(result.Records, "", "  ")
		if err == nil {
			text += "\nRecords:\n"
			text += string(data)
		}
	}

	return text
}

func (s *Server) formatServerInfo() string {
	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Judgment directory: %s\n", s.config.InputDirectory)
	text += fmt.Sprintf("Max file size: %d MB\n", s.config.MaxFileSize/(1024*1024))

	if count, err := s.scanner.CountPDFs(s.config.InputDirectory); err == nil {
		text += fmt.Sprintf("PDF files in directory: %d\n", count)
	} else {
		text += fmt.Sprintf("PDF files in directory: unavailable (%s)\n", err)
	}

	text += "\nAvailable Tools:\n"
	for _, tool := range availableTools() {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += "\n" + usageGuidance()
	return text
}

// toolInfo describes one tool for the server-info response.
type toolInfo struct {
	Name        string
	Description string
	Usage       string
	Parameters  string
}

func availableTools() []toolInfo {
	return []toolInfo{
		{
			Name:        "judgment_extract_file",
			Description: descriptions.GetToolDescription("judgment_extract_file"),
			Usage:       "Use this tool to pull the structured case record out of one judgment PDF.",
			Parameters:  "path (required): Full path to the judgment PDF file",
		},
		{
			Name:        "judgment_extract_directory",
			Description: descriptions.GetToolDescription("judgment_extract_directory"),
			Usage: "Use this tool to process a whole directory of judgments and get every record " +
				"plus a run summary with completeness statistics.",
			Parameters: "directory (optional): Directory path to process (uses the configured directory if empty)",
		},
		{
			Name:        "judgment_detect_language",
			Description: descriptions.GetToolDescription("judgment_detect_language"),
			Usage:       "Use this tool to classify judgment text you already have as english or chinese.",
			Parameters:  "text (required): Judgment text to classify",
		},
		{
			Name:        "judgment_validate_file",
			Description: descriptions.GetToolDescription("judgment_validate_file"),
			Usage:       "Use this tool to check if a file is a valid PDF before attempting extraction.",
			Parameters:  "path (required): Full path to the PDF file",
		},
		{
			Name:        "judgment_server_info",
			Description: descriptions.GetToolDescription("judgment_server_info"),
			Usage:       "Use this tool to get comprehensive server information and available capabilities.",
			Parameters:  "No parameters required",
		},
	}
}

func usageGuidance() string {
	return `Usage guidance:
1. Run judgment_validate_file on unknown files before extraction.
2. Use judgment_extract_file for single documents; empty fields mean the
   document does not state the value, "unknown" marks amounts that could
   not be standardized.
3. Use judgment_extract_directory for whole folders; per-file failures are
   reported in the summary and never abort the run.
4. Corrigendum notices are detected automatically and yield correction
   details instead of outcome fields.`
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting %s in stdio mode", s.config.ServerName)
		log.Printf("Judgment directory: %s", s.config.InputDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server with the SSE transport
func (s *Server) runServerMode(ctx context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting %s in SSE server mode on %s", s.config.ServerName, s.config.Address())
	}

	sseServer := server.NewSSEServer(s.mcpServer)

	errCh := make(chan error, 1)
	go func() {
		errCh <- sseServer.Start(s.config.Address())
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down SSE server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve SSE: %w", err)
		}
		return nil
	}
}
