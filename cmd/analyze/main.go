package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"mindgrid/internal/analysis"
	"mindgrid/internal/llm"
	"mindgrid/internal/service"
	"mindgrid/pkg/config"
	"mindgrid/pkg/logger"

	"go.uber.org/zap"
)

// fileReport is one line of output.
type fileReport struct {
	File     string            `json:"file"`
	Hash     string            `json:"hash,omitempty"`
	Text     string            `json:"text,omitempty"`
	Record   *analysis.Record  `json:"record,omitempty"`
	Priority analysis.Priority `json:"priority,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func main() {
	withText := flag.Bool("text", false, "include the extracted text in the output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-text] file...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// stdout carries the reports, so logs go to stderr only
	appLogger, err := logger.New(cfg.Logger.Level, "console")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	ctx := context.Background()

	var completer analysis.Completer
	provider, err := llm.New(ctx, cfg, appLogger)
	switch {
	case errors.Is(err, llm.ErrDisabled):
		appLogger.Info("AI provider disabled, using local analysis", zap.Error(err))
	case err != nil:
		appLogger.Fatal("Failed to initialize AI provider", zap.Error(err))
	default:
		defer provider.Close()
		completer = provider
	}

	budget := llm.NewTokenBudget(cfg.AI.MaxPromptTokens, appLogger)
	analyzer := analysis.NewAnalyzer(completer, appLogger, analysis.WithTextLimit(budget.Truncate))

	var images service.TextExtractor = service.NewTesseract(cfg.OCR.Languages)
	if ex, ok := provider.(service.TextExtractor); ok && provider.Name() == cfg.OCR.Provider {
		images = ex
	}
	ocr := service.NewOCRService(images, cfg.OCR.Provider, appLogger)

	enc := json.NewEncoder(os.Stdout)
	failed := false
	for _, path := range flag.Args() {
		report := analyzeFile(ctx, path, ocr, analyzer, cfg.AI.Timeout)
		if report.Error != "" {
			failed = true
		}
		if !*withText {
			report.Text = ""
		}
		if err := enc.Encode(report); err != nil {
			appLogger.Fatal("Failed to write report", zap.Error(err))
		}
	}

	if failed {
		os.Exit(1)
	}
}

func analyzeFile(ctx context.Context, path string, ocr *service.OCRService, analyzer *analysis.Analyzer, timeout time.Duration) fileReport {
	report := fileReport{File: path}

	hash, err := calculateFileHash(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Hash = hash

	text, err := ocr.ExtractText(ctx, path)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Text = text

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rec := analyzer.AnalyzeDocument(ctx, text)
	report.Record = &rec
	report.Priority = analysis.PriorityAt(time.Now(), rec.DueDate, rec.ExpiryDate)
	return report
}

// calculateFileHash identifies the input in the report.
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
