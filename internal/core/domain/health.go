package domain

// HealthStatus represents system health information
type HealthStatus struct {
	Status     string            `json:"status"`     // "healthy", "degraded", "unhealthy"
	Components map[string]string `json:"components"` // Component name -> status
	Timestamp  int64             `json:"timestamp"`
	Message    string            `json:"message,omitempty"`
}
