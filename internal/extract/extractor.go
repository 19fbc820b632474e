package extract

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/claimkit/fnoltriage/internal/llm"
	"github.com/claimkit/fnoltriage/internal/model"
	"github.com/claimkit/fnoltriage/internal/worker"
)

// MethodPattern identifies the deterministic fallback strategy; any other
// method value is the name of the AI provider that answered.
const MethodPattern = "pattern"

// Extractor produces a FieldMap from document text. It selects between two
// interchangeable strategies per call: an AI backend when a usable credential
// is configured, and the deterministic pattern library otherwise. Backend
// failure of any kind — network, auth, quota, malformed response — falls back
// to patterns; Extract never fails.
type Extractor struct {
	cfg      *model.Config
	patterns *PatternExtractor
	limiter  *worker.BackendLimiter
}

// New creates an extractor. The config is held by pointer and the LLM section
// is re-read on every call, so a credential update takes effect on the next
// document without rebuilding the extractor.
func New(cfg *model.Config, limiter *worker.BackendLimiter) *Extractor {
	return &Extractor{
		cfg:      cfg,
		patterns: NewPatternExtractor(),
		limiter:  limiter,
	}
}

// Extract returns the field map for the given text plus the method that
// produced it (MethodPattern or a provider name).
func (e *Extractor) Extract(ctx context.Context, text string) (*model.FieldMap, string) {
	llmCfg := llm.ConfigFromModel(e.cfg.LLM)

	provider, err := llm.NewProvider(llmCfg)
	if err != nil || provider == nil {
		// No usable backend configured: misconfiguration behaves the same
		// as no credential at all.
		if err != nil && e.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "AI backend unavailable (%v), using pattern extraction\n", err)
		}
		return e.patterns.Extract(text), MethodPattern
	}

	if e.limiter != nil && !e.limiter.Allow() {
		if e.cfg.Output.Verbose {
			fmt.Fprintln(os.Stderr, "AI backend rate budget exhausted, using pattern extraction")
		}
		return e.patterns.Extract(text), MethodPattern
	}

	// Exactly one attempt against the backend, with a bounded timeout.
	timeout := time.Duration(llmCfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := provider.ExtractFields(attemptCtx, llm.ExtractRequest{
		DocumentText: text,
		Model:        llmCfg.Model,
		MaxTokens:    llmCfg.MaxTokens,
	})
	if err != nil {
		if e.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "%s extraction failed (%v), falling back to pattern extraction\n", provider.Name(), err)
		}
		return e.patterns.Extract(text), MethodPattern
	}

	return resp.Fields, provider.Name()
}
