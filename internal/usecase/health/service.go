package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the store answers but name search is unavailable.
	Degraded Status = "degraded"
	// Unhealthy indicates the store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckMissing indicates a component that was never provisioned.
	CheckMissing CheckResult = "missing"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	indexes   IndexChecker
	indexName string
}

// New creates a Service. indexes can be nil, which skips the search index check.
func New(db DBPinger, indexes IndexChecker, indexName string) *Service {
	return &Service{db: db, indexes: indexes, indexName: indexName}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	status := Healthy
	if s.indexes != nil {
		ok, err := s.indexes.IndexExists(ctx, s.indexName)
		switch {
		case err != nil:
			checks["search_index"] = CheckError
			status = Degraded
		case !ok:
			checks["search_index"] = CheckMissing
			status = Degraded
		default:
			checks["search_index"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
