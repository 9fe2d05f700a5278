package grabber

import (
	"github.com/mfkiwl/piksi-sample-grabber/internal/ports"
	"github.com/mfkiwl/piksi-sample-grabber/pkg/log"
)

// Logger is the structured logging interface consumed by the capture core.
type Logger = log.Logger

// Source delivers chunks of raw bytes from the acquisition hardware.
type Source = ports.Source

// Sink is the append-only byte destination for captured samples.
type Sink = ports.Sink

// Option configures optional behavior of a Grabber.
type Option func(*options)

type options struct {
	logger log.Logger
	source ports.Source
	sink   ports.Sink
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}

// WithLogger sets the logger. Defaults to a no-op logger so embedding
// applications stay quiet unless they opt in.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSource overrides the acquisition source built from Config.Source.
func WithSource(s Source) Option {
	return func(o *options) { o.source = s }
}

// WithSink overrides the output sink built from Config.OutPath. The caller
// retains ownership and must close it after the capture has ended.
func WithSink(s Sink) Option {
	return func(o *options) { o.sink = s }
}
