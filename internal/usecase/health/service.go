package health

import (
	"context"
	"sync"
	"time"
)

// Status is the aggregated health of the service.
type Status string

// Aggregated statuses.
const (
	Healthy   Status = "ok"
	Degraded  Status = "degraded"
	Unhealthy Status = "error"
)

// CheckResult is the outcome of one probe.
type CheckResult string

// Probe outcomes.
const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// DefaultTimeout bounds each probe.
const DefaultTimeout = 2 * time.Second

// Report aggregates probe results by name.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type probe struct {
	name string
	fn   CheckFunc
}

// Service runs the registered probes.
type Service struct {
	probes  []probe
	timeout time.Duration
}

// New registers the database and analyzer probes. A nil argument skips
// that probe, as in the embedded engine where there is no database.
func New(db DBPinger, analyzer AnalyzerChecker) *Service {
	s := &Service{timeout: DefaultTimeout}
	if db != nil {
		s.probes = append(s.probes, probe{"database", db.Ping})
	}
	if analyzer != nil {
		s.probes = append(s.probes, probe{"analyzer", analyzer.HealthCheck})
	}
	return s
}

// WithCheck adds a named probe.
func (s *Service) WithCheck(name string, fn CheckFunc) *Service {
	s.probes = append(s.probes, probe{name, fn})
	return s
}

// WithTimeout sets the per-probe deadline.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check runs all probes concurrently. With no failures the status is
// Healthy; if every probe fails it is Unhealthy; otherwise Degraded.
func (s *Service) Check(ctx context.Context) Report {
	results := make([]CheckResult, len(s.probes))

	var wg sync.WaitGroup
	for i, p := range s.probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			results[i] = result(p.fn(pctx))
		}()
	}
	wg.Wait()

	checks := make(map[string]CheckResult, len(s.probes))
	failed := 0
	for i, p := range s.probes {
		checks[p.name] = results[i]
		if results[i] == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed > 0 && failed == len(s.probes):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}
	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
