package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dacdangvan/seotool-sub006/crawler"
	"github.com/dacdangvan/seotool-sub006/models"
	"github.com/dacdangvan/seotool-sub006/webhook"
)

// batchTTL is how long finished jobs stay queryable.
const batchTTL = time.Hour

// batchStore holds all in-flight and completed batch jobs.
var batchStore sync.Map

func init() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			expireBatches(time.Now().Add(-batchTTL))
		}
	}()
}

func expireBatches(cutoff time.Time) {
	batchStore.Range(func(key, value any) bool {
		if value.(*models.BatchJob).CreatedAt < cutoff.Unix() {
			batchStore.Delete(key)
		}
		return true
	})
}

// BatchSettings are the service defaults applied to batch requests.
type BatchSettings struct {
	DiffByDefault bool
	Concurrency   int
	Notifier      *webhook.Notifier
}

// PostBatch returns a handler for POST /api/v1/crawl/batch.
// It registers a job and crawls its URLs in the background.
func PostBatch(cr *crawler.Crawler, settings BatchSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		job := &models.BatchJob{
			ID:            "batch-" + uuid.NewString(),
			Status:        "processing",
			Total:         len(req.URLs),
			Results:       make([]*models.CrawlPageResult, len(req.URLs)),
			CreatedAt:     time.Now().Unix(),
			WebhookURL:    req.WebhookURL,
			WebhookSecret: req.WebhookSecret,
		}
		batchStore.Store(job.ID, job)

		concurrency := req.Concurrency
		if concurrency <= 0 {
			concurrency = settings.Concurrency
		}
		opts := crawler.OptionsFromRequest(req.Options, settings.DiffByDefault)

		go runBatch(cr, job, req.URLs, opts, concurrency, settings.Notifier)

		c.JSON(http.StatusAccepted, models.BatchResponse{
			ID:     job.ID,
			Status: "processing",
			Total:  job.Total,
		})
	}
}

// GetBatch returns a handler for GET /api/v1/crawl/batch/:id.
func GetBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := batchStore.Load(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "batch job not found",
				},
			})
			return
		}
		c.JSON(http.StatusOK, val.(*models.BatchJob).Snapshot())
	}
}

// runBatch crawls every URL of job, records results as they finish and
// fires the completion webhook.
func runBatch(cr *crawler.Crawler, job *models.BatchJob, urls []string, opts crawler.Options, concurrency int, notifier *webhook.Notifier) {
	index := make(map[string][]int, len(urls))
	for i, u := range urls {
		index[u] = append(index[u], i)
	}

	var mu sync.Mutex
	cr.CrawlBatch(context.Background(), urls, opts, concurrency, func(done, total int, res *models.CrawlPageResult) {
		mu.Lock()
		defer mu.Unlock()
		idxs := index[res.URL]
		if len(idxs) == 0 {
			return
		}
		job.Record(idxs[0], res)
		index[res.URL] = idxs[1:]
	})
	job.Finish()

	snap := job.Snapshot()
	slog.Info("batch job finished",
		"id", snap.ID,
		"status", snap.Status,
		"completed", snap.Completed-snap.Failed,
		"failed", snap.Failed,
		"total", snap.Total,
	)

	if job.WebhookURL != "" && notifier != nil {
		eventType := webhook.EventBatchCompleted
		if snap.Status == "failed" {
			eventType = webhook.EventBatchFailed
		}
		notifier.DeliverAsync(job.WebhookURL, job.WebhookSecret, &webhook.Event{
			Type:      eventType,
			JobID:     job.ID,
			Timestamp: time.Now().Unix(),
			Data:      snap,
		})
	}
}
