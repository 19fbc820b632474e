package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/claimkit/fnoltriage/internal/model"
	"github.com/claimkit/fnoltriage/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON     string
	timeout     time.Duration
	noCache     bool
	noAI        bool
	compactJSON bool
	aiProvider  string
	aiModel     string
	apiKey      string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <document>",
	Short: "Process a single FNOL document and produce a routing decision",
	Long: `Process runs one claim document through the triage pipeline:
- Extract structured fields (AI backend with pattern-matching fallback)
- Validate completeness against the 13 mandatory fields
- Route to Fast-track, Manual Review, Investigation Flag, or Specialist Queue

Example:
  fnoltriage process claim.txt
  fnoltriage process claim.txt --json result.json
  fnoltriage process claim.html --ai-provider openai --ai-model gpt-4o-mini
  fnoltriage process claim.txt --no-ai`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	processCmd.Flags().BoolVar(&compactJSON, "compact", false, "emit compact JSON instead of pretty-printed")

	// Pipeline flags
	processCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall processing timeout")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache (force fresh extraction)")

	// AI backend flags
	processCmd.Flags().BoolVar(&noAI, "no-ai", false, "disable the AI backend (force pattern extraction)")
	processCmd.Flags().StringVar(&aiProvider, "ai-provider", "gemini", "AI provider (gemini, openai, anthropic, ollama)")
	processCmd.Flags().StringVar(&aiModel, "ai-model", "", "AI model name (provider default when empty)")
	processCmd.Flags().StringVar(&apiKey, "api-key", "", "AI backend API key (overrides environment and config file)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	document := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing: %s\n", document)
		if cfg.LLM.Provider != "" {
			fmt.Fprintf(os.Stderr, "AI backend: %s\n", cfg.LLM.Provider)
		} else {
			fmt.Fprintln(os.Stderr, "AI backend: disabled (pattern extraction)")
		}
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	result, err := p.ProcessFile(ctx, document)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	return p.RenderResult(result, outJSON)
}

// buildConfig assembles pipeline configuration from flags, environment, and
// config file. The credential is resolved here, per invocation, so key
// changes apply without touching cached state.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Output.Pretty = !compactJSON
	cfg.Cache.Enabled = !noCache

	if noAI {
		cfg.LLM.Provider = ""
		return cfg
	}

	cfg.LLM.Provider = aiProvider
	cfg.LLM.Model = aiModel
	cfg.LLM.APIKey = resolveAPIKey(aiProvider)

	if baseURL := viper.GetString("llm.base_url"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if aiProvider == "ollama" {
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	// A key-less configuration is not an error: extraction silently uses
	// the deterministic fallback, matching the no-credential contract.
	if cfg.LLM.APIKey == "" && cfg.LLM.Provider != "ollama" {
		cfg.LLM.Provider = ""
	}

	return cfg
}

// resolveAPIKey returns the backend credential: flag, then provider
// environment variable, then config file.
func resolveAPIKey(provider string) string {
	if apiKey != "" {
		return apiKey
	}

	switch provider {
	case "gemini", "google":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			return key
		}
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key
		}
	case "anthropic", "claude":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			return key
		}
	}

	return viper.GetString("llm.api_key")
}
