package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/hkjudgments/courtextract/internal/batch"
	"github.com/hkjudgments/courtextract/internal/config"
	"github.com/hkjudgments/courtextract/internal/export"
	"github.com/hkjudgments/courtextract/internal/extract"
	"github.com/hkjudgments/courtextract/internal/llm"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First signal cancels the run; in-flight files finish or time out
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalCh
		logger.Warn("batch.interrupt", "signal", sig.String())
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	processor := batch.NewProcessor(batch.Options{
		MaxFileSize: cfg.MaxFileSize,
		Workers:     cfg.Workers,
		FileTimeout: cfg.FileTimeout,
		Logger:      logger,
		OnProgress:  progressCallback(),
	})

	result, err := processor.ProcessDirectory(ctx, cfg.InputDirectory)
	if err != nil {
		return err
	}

	records := result.Records
	if cfg.LLMEnabled && len(records) > 0 {
		client, err := llm.NewClient(llm.Config{
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
			APIKey:  cfg.LLMAPIKey,
			Logger:  logger,
		})
		if err != nil {
			return fmt.Errorf("failed to build LLM client: %w", err)
		}

		// Analysis failures keep the stage-1 records, the run still completes
		records, err = client.AnalyzeRecords(ctx, records)
		if err != nil {
			logger.Warn("llm.records.failed", "error", err)
		}
	}

	if err := os.MkdirAll(cfg.OutputDirectory, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	now := time.Now()
	saved, err := writeResults(cfg, records, now)
	if err != nil {
		return err
	}

	summaryPath := export.SummaryPath(cfg.OutputDirectory, now)
	summary := batch.Summarize(records, result.Failures, result.Elapsed)
	summary.SavedFiles = append(saved, summaryPath)
	if err := os.WriteFile(summaryPath, []byte(summary.Text()), 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	fmt.Println(summary.Text())
	return nil
}

// writeResults writes the records in every configured format and returns the
// paths written.
func writeResults(cfg *config.Config, records []extract.Record, at time.Time) ([]string, error) {
	var saved []string
	for _, format := range cfg.OutputFormats {
		var path string
		var err error
		switch format {
		case "json":
			path = export.ResultsPath(cfg.OutputDirectory, "json", at)
			err = export.WriteJSON(records, path)
		case "csv":
			path = export.ResultsPath(cfg.OutputDirectory, "csv", at)
			err = export.WriteCSV(records, path)
		case "excel":
			path = export.ResultsPath(cfg.OutputDirectory, "xlsx", at)
			err = export.WriteExcel(records, path)
		}
		if err != nil {
			return saved, fmt.Errorf("failed to write %s output: %w", format, err)
		}
		saved = append(saved, path)
	}
	return saved, nil
}

// progressCallback renders a terminal progress bar. The bar is created on
// the first callback because the file count is only known after the scan.
func progressCallback() func(done, total int) {
	var once sync.Once
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		once.Do(func() {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Extracting"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		})
		_ = bar.Add(1)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("CourtExtract\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
