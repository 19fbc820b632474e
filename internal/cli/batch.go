package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/claimkit/fnoltriage/internal/pipeline"
	"github.com/claimkit/fnoltriage/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Process every FNOL document in a directory in parallel",
	Long: `Batch processes a directory of claim documents concurrently:
- Pick up every supported document (.txt, .text, .html, .htm)
- Process claims in parallel with a configurable worker count
- Write one JSON result per document
- A failed document never affects the rest of the batch

Example:
  fnoltriage batch ./claims
  fnoltriage batch ./claims --concurrency 8 --output-dir ./results
  fnoltriage batch ./claims --no-ai --output-dir ./results`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./fnoltriage-results", "output directory for result JSON files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache (force fresh extraction)")
	batchCmd.Flags().BoolVar(&compactJSON, "compact", false, "emit compact JSON instead of pretty-printed")

	// AI backend flags
	batchCmd.Flags().BoolVar(&noAI, "no-ai", false, "disable the AI backend (force pattern extraction)")
	batchCmd.Flags().StringVar(&aiProvider, "ai-provider", "gemini", "AI provider (gemini, openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&aiModel, "ai-model", "", "AI model name (provider default when empty)")
	batchCmd.Flags().StringVar(&apiKey, "api-key", "", "AI backend API key (overrides environment and config file)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Concurrency.Workers = concurrency

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  FNOL Batch Processing\n")
	fmt.Fprintf(os.Stderr, "  Input dir:   %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:  %s\n", outputDir)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  AI backend:  %s\n", cfg.LLM.Provider)
	} else {
		fmt.Fprintf(os.Stderr, "  AI backend:  disabled (pattern extraction)\n")
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	outcomes, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}
	if len(outcomes) == 0 {
		return fmt.Errorf("no supported documents found in %s", dir)
	}

	succeeded, failed := 0, 0
	for _, outcome := range outcomes {
		if outcome.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", filepath.Base(outcome.Path), outcome.Error)
			continue
		}

		outPath := filepath.Join(outputDir, resultFileName(outcome.Path))
		if err := p.RenderResult(outcome.Result, outPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", filepath.Base(outcome.Path), err)
			continue
		}

		succeeded++
		fmt.Fprintf(os.Stderr, "  ✓ %s → %s\n", filepath.Base(outcome.Path), outcome.Result.RecommendedRoute)
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d documents: %d succeeded, %d failed\n", len(outcomes), succeeded, failed)

	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("all %d documents failed", failed)
	}
	return nil
}

// resultFileName maps claim.txt to claim.result.json
func resultFileName(documentPath string) string {
	base := filepath.Base(documentPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".result.json"
}
