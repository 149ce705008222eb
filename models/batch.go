package models

import "sync"

// BatchResponse is the immediate response for POST /api/v1/crawl/batch.
type BatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchStatusResponse is the response for GET /api/v1/crawl/batch/:id.
type BatchStatusResponse struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	Completed int                `json:"completed"`
	Failed    int                `json:"failed"`
	Total     int                `json:"total"`
	Results   []*CrawlPageResult `json:"results,omitempty"`
}

// BatchJob tracks an in-progress batch crawl.
type BatchJob struct {
	mu sync.Mutex

	ID            string
	Status        string // "processing", "completed", "failed", "partial"
	Total         int
	Completed     int
	Failed        int
	Results       []*CrawlPageResult
	CreatedAt     int64 // unix timestamp
	WebhookURL    string
	WebhookSecret string
}

// Record stores the result for index idx and updates the counters.
func (j *BatchJob) Record(idx int, res *CrawlPageResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Results[idx] = res
	if res.Failed() {
		j.Failed++
	} else {
		j.Completed++
	}
}

// Finish sets the terminal status from the counters.
func (j *BatchJob) Finish() {
	j.mu.Lock()
	defer j.mu.Unlock()
	switch {
	case j.Failed == j.Total:
		j.Status = "failed"
	case j.Failed > 0:
		j.Status = "partial"
	default:
		j.Status = "completed"
	}
}

// Snapshot returns a consistent status view of the job.
func (j *BatchJob) Snapshot() BatchStatusResponse {
	j.mu.Lock()
	defer j.mu.Unlock()
	results := make([]*CrawlPageResult, len(j.Results))
	copy(results, j.Results)
	return BatchStatusResponse{
		ID:        j.ID,
		Status:    j.Status,
		Completed: j.Completed + j.Failed,
		Failed:    j.Failed,
		Total:     j.Total,
		Results:   results,
	}
}
