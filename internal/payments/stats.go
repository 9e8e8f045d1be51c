package payments

import (
	"sync"
	"time"

	"vigil/internal/payments/models"
)

// DefaultLatencyWindow is how many recent screenings feed the moving average.
const DefaultLatencyWindow = 1000

// Stats accumulates pipeline counters and a bounded latency window. Safe for
// concurrent use; the window overwrites oldest entries once full, so memory
// stays fixed regardless of throughput.
type Stats struct {
	mu        sync.Mutex
	total     uint64
	byStatus  map[models.Status]uint64
	latencies []time.Duration
	next      int
	filled    bool
}

func NewStats(window int) *Stats {
	if window <= 0 {
		window = DefaultLatencyWindow
	}
	return &Stats{
		byStatus:  make(map[models.Status]uint64),
		latencies: make([]time.Duration, window),
	}
}

// Record counts one completed screening and its latency.
func (s *Stats) Record(status models.Status, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.byStatus[status]++
	s.latencies[s.next] = latency
	s.next++
	if s.next == len(s.latencies) {
		s.next = 0
		s.filled = true
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Total          uint64                   `json:"total_screened"`
	ByStatus       map[models.Status]uint64 `json:"by_status"`
	AvgLatencyMS   float64                  `json:"avg_latency_ms"`
	LatencyWindow  int                      `json:"latency_window"`
	LatencySamples int                      `json:"latency_samples"`
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.next
	if s.filled {
		n = len(s.latencies)
	}
	var sum time.Duration
	for i := 0; i < n; i++ {
		sum += s.latencies[i]
	}
	var avg float64
	if n > 0 {
		avg = float64(sum) / float64(time.Millisecond) / float64(n)
	}

	byStatus := make(map[models.Status]uint64, len(s.byStatus))
	for k, v := range s.byStatus {
		byStatus[k] = v
	}
	return Snapshot{
		Total:          s.total,
		ByStatus:       byStatus,
		AvgLatencyMS:   avg,
		LatencyWindow:  len(s.latencies),
		LatencySamples: n,
	}
}
