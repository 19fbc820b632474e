package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/claimkit/fnoltriage/internal/cache"
	"github.com/claimkit/fnoltriage/internal/extract"
	"github.com/claimkit/fnoltriage/internal/model"
	"github.com/claimkit/fnoltriage/internal/route"
	"github.com/claimkit/fnoltriage/internal/validate"
	"github.com/claimkit/fnoltriage/internal/worker"
)

// ErrEmptyDocument is returned when there is no text to extract from. This
// is the one input the pipeline does not absorb: every readable document
// yields a ClaimResult, but an empty one has no meaningful field map.
var ErrEmptyDocument = errors.New("document text is empty")

// ErrInvalidEncoding is returned for input that is not valid UTF-8
var ErrInvalidEncoding = errors.New("document text is not valid UTF-8")

// Pipeline sequences extraction, validation, and routing for FNOL documents.
// It is the only component aware of all three stages; each stage fully
// consumes the previous stage's output, and nothing mutates shared state
// during a call, so concurrent Process calls are safe.
type Pipeline struct {
	cfg       *model.Config
	extractor *extract.Extractor
	validator *validate.Validator
	router    *route.Router
	cache     cache.Cache
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var limiter *worker.BackendLimiter
	if cfg.LLM.RequestsPerSecond > 0 {
		limiter = worker.NewBackendLimiter(cfg.LLM.RequestsPerSecond, cfg.LLM.Burst)
	}

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cacheDir(cfg), cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		cfg:       cfg,
		extractor: extract.New(cfg, limiter),
		validator: validate.NewValidator(),
		router:    route.NewRouter(),
		cache:     resultCache,
	}
}

// Process runs one document through extract → validate → route and
// assembles the final result. Extraction never fails (backend errors fall
// back to pattern matching), so the only errors are empty or undecodable
// input.
func (p *Pipeline) Process(ctx context.Context, documentText string) (*model.ClaimResult, error) {
	if strings.TrimSpace(documentText) == "" {
		return nil, ErrEmptyDocument
	}
	if !utf8.ValidString(documentText) {
		return nil, ErrInvalidEncoding
	}

	cacheKey := cache.ResultKey(documentText, p.extractionMode())
	if p.cache != nil {
		if data, found := p.cache.Get(cacheKey); found {
			var cached model.ClaimResult
			if err := json.Unmarshal(data, &cached); err == nil {
				if p.cfg.Output.Verbose {
					fmt.Fprintln(os.Stderr, "Result served from cache")
				}
				return &cached, nil
			}
			// Corrupt entry: drop it and reprocess.
			_ = p.cache.Delete(cacheKey)
		}
	}

	fields, method := p.extractor.Extract(ctx, documentText)
	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Extracted %d fields via %s\n", fields.PopulatedCount(), method)
	}

	flagged := p.validator.Validate(fields)
	if p.cfg.Output.Verbose {
		if len(flagged) > 0 {
			fmt.Fprintf(os.Stderr, "Missing or invalid mandatory fields: %d\n", len(flagged))
			for _, path := range flagged {
				fmt.Fprintf(os.Stderr, "  - %s\n", validate.DisplayName(path))
			}
		} else {
			fmt.Fprintln(os.Stderr, "All mandatory fields present")
		}
	}

	recommendedRoute, reasoning := p.router.Route(fields, flagged)
	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Route: %s\n", recommendedRoute)
	}

	result := &model.ClaimResult{
		ExtractedFields:  fields,
		MissingFields:    flagged,
		RecommendedRoute: recommendedRoute,
		Reasoning:        reasoning,
	}

	if p.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = p.cache.Set(cacheKey, data, 0)
		}
	}

	return result, nil
}

// ProcessFile reads a document from disk and processes it
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*model.ClaimResult, error) {
	text, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}

	result, err := p.Process(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return result, nil
}

// RenderResult serializes a result to the given path, or to stdout when the
// path is empty.
func (p *Pipeline) RenderResult(result *model.ClaimResult, jsonPath string) error {
	var data []byte
	var err error
	if p.cfg.Output.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if jsonPath == "" {
		fmt.Println(string(data))
		return nil
	}

	if dir := filepath.Dir(jsonPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Result written to %s\n", jsonPath)
	}
	return nil
}

// extractionMode identifies which strategy configuration is active, for
// cache keying. A result produced while a backend was configured is never
// reused after the credential changes.
func (p *Pipeline) extractionMode() string {
	if p.cfg.LLM.Provider == "" {
		return extract.MethodPattern
	}
	if p.cfg.LLM.APIKey == "" && strings.ToLower(p.cfg.LLM.Provider) != "ollama" {
		return extract.MethodPattern
	}
	return p.cfg.LLM.Provider + "/" + p.cfg.LLM.Model
}

func cacheDir(cfg *model.Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "fnoltriage")
	}
	return filepath.Join(os.TempDir(), "fnoltriage-cache")
}
