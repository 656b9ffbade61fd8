package dto

// HealthResponse is returned by the health, liveness and readiness endpoints.
type HealthResponse struct {
	Status     string            `json:"status" example:"ready"`
	Components *HealthComponents `json:"components,omitempty"`
}

// HealthComponents reports the state of each dependency checked by /readyz.
type HealthComponents struct {
	Database string `json:"database" example:"ok"`
}
