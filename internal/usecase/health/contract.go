package health

import "context"

// DBPinger is the storage liveness probe.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// AnalyzerChecker reports whether the analysis rule set is usable.
type AnalyzerChecker interface {
	HealthCheck(ctx context.Context) error
}

// CheckFunc is a single named probe.
type CheckFunc func(ctx context.Context) error
