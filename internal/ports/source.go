package ports

import (
	"context"

	"github.com/mfkiwl/piksi-sample-grabber/internal/domain"
)

// ChunkFunc is invoked by a Source once per received chunk. The chunk buffer
// is only valid for the duration of the call; implementations that need to
// retain bytes must copy them. Returning false requests that the source stop
// delivering further chunks. The source may still deliver in-flight chunks
// after a false return; the callback must tolerate them.
type ChunkFunc func(chunk []byte, stats domain.TransferStats) bool

// Source delivers chunks of raw bytes from the acquisition hardware (or a
// stand-in such as a file or named pipe).
type Source interface {
	// Stream runs the delivery loop, invoking fn for each received chunk
	// until fn returns false, the context is canceled, or the transport
	// fails. A non-nil error indicates a non-recoverable transport failure;
	// a stop requested via fn or ctx returns nil.
	Stream(ctx context.Context, fn ChunkFunc) error
}
