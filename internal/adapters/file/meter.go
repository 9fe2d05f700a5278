package file

import (
	"time"

	"github.com/mfkiwl/piksi-sample-grabber/internal/domain"
)

// rateWindow is the measurement window for the current-rate figure.
const rateWindow = time.Second

// rateMeter accumulates per-chunk transfer statistics for progress
// reporting.
type rateMeter struct {
	start       time.Time
	total       uint64
	windowStart time.Time
	windowBytes uint64
	currentRate float64
}

func newRateMeter() *rateMeter {
	now := time.Now()
	return &rateMeter{start: now, windowStart: now}
}

// sample records n delivered bytes and returns the stats to report with the
// chunk.
func (m *rateMeter) sample(n int) domain.TransferStats {
	now := time.Now()
	m.total += uint64(n)
	m.windowBytes += uint64(n)

	elapsed := now.Sub(m.start)
	stats := domain.TransferStats{
		Elapsed:    elapsed,
		TotalBytes: m.total,
	}
	if elapsed > 0 {
		stats.AverageRate = float64(m.total) / elapsed.Seconds()
	}
	if w := now.Sub(m.windowStart); w >= rateWindow {
		m.currentRate = float64(m.windowBytes) / w.Seconds()
		m.windowStart = now
		m.windowBytes = 0
	}
	stats.CurrentRate = m.currentRate
	return stats
}
