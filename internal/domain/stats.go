package domain

import "time"

// TransferStats is the running transfer-rate report the acquisition source
// delivers alongside each chunk. Rates are in bytes per second.
type TransferStats struct {
	// Elapsed is the time since the first byte was delivered.
	Elapsed time.Duration

	// TotalBytes is the cumulative number of bytes delivered by the source,
	// including bytes later discarded by the flush threshold.
	TotalBytes uint64

	// CurrentRate is the transfer rate over the most recent measurement
	// window.
	CurrentRate float64

	// AverageRate is the transfer rate averaged over the whole session.
	AverageRate float64
}
