package renderer

import (
	"context"
	"sync"

	"github.com/dacdangvan/seotool-sub006/models"
)

// DefaultBatchConcurrency is the chunk size used when none is given.
const DefaultBatchConcurrency = 3

// BatchResult is the outcome of one URL in a batch: exactly one of Dom and
// Err is set.
type BatchResult struct {
	Dom *models.RenderedDom
	Err error
}

// RenderBatch renders urls in fixed-size chunks. Renders within a chunk run
// concurrently and the next chunk starts once the whole chunk finished. A
// failing URL is recorded in its result and does not affect the others.
func (e *Engine) RenderBatch(ctx context.Context, urls []string, opts Options, concurrency int) map[string]BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	results := make(map[string]BatchResult, len(urls))
	var mu sync.Mutex

	for start := 0; start < len(urls); start += concurrency {
		end := min(start+concurrency, len(urls))

		var wg sync.WaitGroup
		for _, u := range urls[start:end] {
			wg.Add(1)
			go func(u string) {
				defer wg.Done()
				dom, err := e.Render(ctx, u, opts)
				mu.Lock()
				results[u] = BatchResult{Dom: dom, Err: err}
				mu.Unlock()
			}(u)
		}
		wg.Wait()
	}
	return results
}
