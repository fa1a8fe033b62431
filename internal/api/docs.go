package api

// ErrorResponse represents an error response
// @Description Error response returned by every failing endpoint
// @swagger:model ErrorResponse
type ErrorResponse struct {
	// Human readable error message
	// @example repository not found
	Error string `json:"error" example:"repository not found"`
}

// TrackRepositoryRequest identifies a repository to start tracking.
// Either Owner and Name, or URL, must be set.
// @swagger:model TrackRepositoryRequest
type TrackRepositoryRequest struct {
	Owner string `json:"owner,omitempty" example:"golang"`
	Name  string `json:"name,omitempty" example:"go"`
	// Full name ("owner/name"), https URL or git remote
	URL string `json:"url,omitempty" example:"https://github.com/golang/go"`
}

// DeleteResponse is returned after a repository was removed
// @swagger:model DeleteResponse
type DeleteResponse struct {
	Success bool `json:"success" example:"true"`
}

// HealthResponse reports service and database health
// @swagger:model HealthResponse
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}
