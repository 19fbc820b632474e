package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/claimkit/fnoltriage/internal/model"
)

// Processor defines the interface for processing a single claim document
type Processor interface {
	ProcessFile(ctx context.Context, path string) (*model.ClaimResult, error)
}

// ClaimJob represents one document to process
type ClaimJob struct {
	Path      string
	Processor Processor
}

// Execute executes the claim job
func (j *ClaimJob) Execute(ctx context.Context) Result {
	result, err := j.Processor.ProcessFile(ctx, j.Path)
	return &ClaimOutcome{
		Path:   j.Path,
		Result: result,
		Error:  err,
	}
}

// ClaimOutcome is the result of processing one document. A failed document
// carries its error here; it never affects the other documents in the batch.
type ClaimOutcome struct {
	Path   string
	Result *model.ClaimResult
	Error  error
}

// GetError returns the error from the outcome
func (o *ClaimOutcome) GetError() error {
	return o.Error
}

// BatchProcessor processes multiple claim documents concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths processes the given documents concurrently. Output order is
// not guaranteed; each outcome carries its document path.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ClaimOutcome {
	if len(paths) == 0 {
		return []*ClaimOutcome{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Both pool channels are bounded, so submission must overlap collection:
	// queueing every document before draining results stalls the workers once
	// a batch outgrows the channel buffers.
	go func() {
		for _, path := range paths {
			pool.Submit(&ClaimJob{
				Path:      path,
				Processor: b.processor,
			})
		}
	}()

	outcomes := make([]*ClaimOutcome, 0, len(paths))
	for range paths {
		outcomes = append(outcomes, (<-pool.results).(*ClaimOutcome))
	}

	pool.Shutdown()
	return outcomes
}

// ProcessDir processes every supported document in a directory
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*ClaimOutcome, error) {
	paths, err := ListDocuments(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ListDocuments returns the readable documents in a directory, sorted by
// name. The supported predicate defaults to .txt/.text/.html/.htm.
func ListDocuments(dir string, supported func(string) bool) ([]string, error) {
	if supported == nil {
		supported = defaultSupported
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !supported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}

func defaultSupported(name string) bool {
	switch filepath.Ext(name) {
	case ".txt", ".text", ".html", ".htm":
		return true
	}
	return false
}
