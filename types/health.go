package types

// HealthStatus of a component or of the whole service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "UP"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusDown     HealthStatus = "DOWN"
)

var healthSeverity = map[HealthStatus]int{
	HealthStatusUp:       0,
	HealthStatusDegraded: 1,
	HealthStatusDown:     2,
}

// Worse returns the more severe of two statuses.
func (s HealthStatus) Worse(other HealthStatus) HealthStatus {
	if healthSeverity[other] > healthSeverity[s] {
		return other
	}
	return s
}

// HealthComponent is one dependency probed by the health check: the
// database, Redis or the store order stream.
type HealthComponent struct {
	Status  HealthStatus `json:"status"`
	Details string       `json:"details,omitempty"`
}

// HealthCheck is the body of GET /health. Status is the worst component
// status.
type HealthCheck struct {
	Status     HealthStatus               `json:"status"`
	Components map[string]HealthComponent `json:"components"`
	Version    string                     `json:"version"`
	Timestamp  string                     `json:"timestamp"`
	Uptime     string                     `json:"uptime"`
}

// OverallStatus folds component statuses; no components means UP.
func OverallStatus(components map[string]HealthComponent) HealthStatus {
	status := HealthStatusUp
	for _, c := range components {
		status = status.Worse(c.Status)
	}
	return status
}
