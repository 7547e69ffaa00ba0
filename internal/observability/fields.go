package observability

import "go.uber.org/zap"

// Field aliases so callers outside the HTTP layer do not need to import zap
// directly.
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Bool     = zap.Bool
	Duration = zap.Duration
	Time     = zap.Time
	Strings  = zap.Strings
	Error    = zap.Error
)
