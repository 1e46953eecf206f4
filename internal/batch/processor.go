// Package batch runs field extraction over directories of judgment PDFs
// with a bounded worker pool. Individual file failures are collected, never
// fatal: one corrupt PDF must not sink a ten-thousand-file run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hkjudgments/courtextract/internal/extract"
	"github.com/hkjudgments/courtextract/internal/pdftext"
)

const (
	// DefaultMaxFileSize is the largest PDF the processor will open.
	DefaultMaxFileSize = 100 * 1024 * 1024

	// DefaultFileTimeout bounds the time spent on a single file. Malformed
	// PDFs can send the text layer into pathological parses.
	DefaultFileTimeout = 30 * time.Second

	progressEvery = 10
)

// Options configures a Processor. Zero values select defaults.
type Options struct {
	// MaxFileSize caps the size of PDFs opened for extraction.
	MaxFileSize int64

	// Workers is the pool size. Zero sizes the pool from runtime.NumCPU.
	Workers int

	// FileTimeout bounds extraction of a single file.
	FileTimeout time.Duration

	Logger *slog.Logger

	// OnProgress, when set, is called after each file completes. It may be
	// called concurrently from worker goroutines.
	OnProgress func(done, total int)
}

// FileFailure records one file that could not be processed.
type FileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Result holds the outcome of one directory run.
type Result struct {
	RunID    string           `json:"run_id"`
	Records  []extract.Record `json:"records"`
	Failures []FileFailure    `json:"failures,omitempty"`
	Elapsed  time.Duration    `json:"-"`
	Summary  Summary          `json:"summary"`
}

// Processor extracts fields from every PDF under a directory.
type Processor struct {
	reader   *pdftext.Reader
	scanner  *pdftext.Scanner
	engine   *extract.Engine
	logger   *slog.Logger
	workers  int
	timeout  time.Duration
	progress func(done, total int)
}

// NewProcessor builds a Processor with the given options.
func NewProcessor(opts Options) *Processor {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.FileTimeout <= 0 {
		opts.FileTimeout = DefaultFileTimeout
	}
	if opts.Workers <= 0 {
		opts.Workers = workerCount(runtime.NumCPU())
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Processor{
		reader:   pdftext.NewReader(opts.MaxFileSize),
		scanner:  pdftext.NewScanner(opts.MaxFileSize),
		engine:   extract.NewEngine(),
		logger:   opts.Logger,
		workers:  opts.Workers,
		timeout:  opts.FileTimeout,
		progress: opts.OnProgress,
	}
}

// Workers reports the configured pool size.
func (p *Processor) Workers() int { return p.workers }

// ProcessFile extracts the record for a single PDF. The page-index cleanup
// pass runs before extraction so margin artifacts from two-column layouts
// do not pollute the caption fields.
func (p *Processor) ProcessFile(ctx context.Context, path string) (extract.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type outcome struct {
		rec extract.Record
		err error
	}
	out := make(chan outcome, 1)
	go func() {
		doc, err := p.reader.ExtractFile(path)
		if err != nil {
			out <- outcome{err: err}
			return
		}
		text := extract.CleanIndexArtifacts(doc.Text)
		out <- outcome{rec: p.engine.Extract(text, path)}
	}()

	select {
	case <-ctx.Done():
		return extract.Record{}, fmt.Errorf("processing timed out: %w", ctx.Err())
	case o := <-out:
		if o.err != nil {
			return extract.Record{}, o.err
		}
		return o.rec, nil
	}
}

// ProcessDirectory scans dir for PDFs and extracts a record from each one.
// Records keep the scan order regardless of which worker finished first.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	logger := p.logger.With("run_id", runID)

	files, err := p.scanner.FindPDFs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	logger.Info("batch.run.start",
		"directory", dir,
		"files", len(files),
		"workers", p.workers,
	)

	type slot struct {
		path string
		rec  extract.Record
		err  error
	}
	slots := make([]slot, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	var completed atomic.Int64

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				path := files[idx].Path
				logger.Debug("batch.file.start", "path", path)
				rec, err := p.ProcessFile(ctx, path)
				slots[idx] = slot{path: path, rec: rec, err: err}
				if err != nil {
					logger.Warn("batch.file.failed", "path", path, "error", err)
				} else {
					logger.Debug("batch.file.done",
						"path", path,
						"language", rec.Language,
						"case_number", rec.CaseNumber,
					)
				}
				n := completed.Add(1)
				if n%progressEvery == 0 || n == int64(len(files)) {
					logger.Info("batch.progress", "processed", n, "total", len(files))
				}
				if p.progress != nil {
					p.progress(int(n), len(files))
				}
			}
		}()
	}

	fed := 0
feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- idx:
			fed++
		}
	}
	close(jobs)
	wg.Wait()

	result := &Result{RunID: runID}
	for i := 0; i < fed; i++ {
		s := slots[i]
		if s.err != nil {
			result.Failures = append(result.Failures, FileFailure{Path: s.path, Error: s.err.Error()})
			continue
		}
		result.Records = append(result.Records, s.rec)
	}
	for i := fed; i < len(files); i++ {
		result.Failures = append(result.Failures, FileFailure{Path: files[i].Path, Error: ctx.Err().Error()})
	}

	result.Elapsed = time.Since(start)
	result.Summary = Summarize(result.Records, result.Failures, result.Elapsed)
	logger.Info("batch.run.done",
		"processed", len(result.Records),
		"failed", len(result.Failures),
		"elapsed", result.Elapsed.Round(time.Millisecond).String(),
	)
	return result, nil
}
