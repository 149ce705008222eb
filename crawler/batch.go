package crawler

import (
	"context"
	"sync"

	"github.com/dacdangvan/seotool-sub006/models"
)

// ProgressFunc is called after each URL of a batch finished. done counts up
// to total exactly once per URL.
type ProgressFunc func(done, total int, res *models.CrawlPageResult)

// CrawlBatch crawls urls with at most concurrency crawls in flight and
// returns the results in input order. A failing URL only affects its own
// result.
func (c *Crawler) CrawlBatch(ctx context.Context, urls []string, opts Options, concurrency int, onProgress ProgressFunc) []*models.CrawlPageResult {
	if concurrency <= 0 {
		concurrency = c.concurrency
	}
	results := make([]*models.CrawlPageResult, len(urls))
	sem := make(chan struct{}, concurrency)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for i, u := range urls {
		wg.Add(1)
		go func(idx int, target string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res := c.Crawl(ctx, target, opts)
			results[idx] = res

			if onProgress != nil {
				mu.Lock()
				done++
				onProgress(done, len(urls), res)
				mu.Unlock()
			}
		}(i, u)
	}
	wg.Wait()
	return results
}
