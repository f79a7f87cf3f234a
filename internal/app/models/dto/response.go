package dto

// DeleteResponse is returned by DELETE endpoints
type DeleteResponse struct {
	Success bool  `json:"success" example:"true"`
	Delete  int64 `json:"delete" example:"3"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Success bool   `json:"success" example:"true"`
	Status  string `json:"status" example:"ok"`
}
