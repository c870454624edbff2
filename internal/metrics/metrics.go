package metrics

import (
	"sync"
	"time"
)

// Metrics counts what the pipeline and the server have been doing. Exposed
// via the /metrics and /health endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched        int64
	FeedFetchErrors     int64
	ItemsExtracted      int64
	DuplicatesFiltered  int64
	TranslationBatches  int64
	TranslationFailures int64
	CacheHits           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedFetchErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedFetchErrors++
}

func (m *Metrics) IncrementItemsExtracted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsExtracted++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementTranslationBatches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranslationBatches++
}

func (m *Metrics) IncrementTranslationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranslationFailures++
}

func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":        m.FeedsFetched,
		"feed_fetch_errors":    m.FeedFetchErrors,
		"items_extracted":      m.ItemsExtracted,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"translation_batches":  m.TranslationBatches,
		"translation_failures": m.TranslationFailures,
		"cache_hits":           m.CacheHits,
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
