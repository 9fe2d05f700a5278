package ports

import "github.com/mfkiwl/piksi-sample-grabber/pkg/log"

// Logger is the structured logging abstraction used across the core.
// It is an alias of the pkg/log interface so adapters and the core share
// one logging contract.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Re-export the field constructors so core packages only import ports.
var (
	String   = log.String
	Int      = log.Int
	Int64    = log.Int64
	Uint64   = log.Uint64
	Float64  = log.Float64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
)
