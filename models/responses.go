package models

// ProjectListResponse is the envelope returned by GET /api/projects.
// Count duplicates len(Data) so clients can validate the response without
// iterating the slice.
type ProjectListResponse struct {
	Success bool      `json:"success"`
	Count   int       `json:"count"`
	Data    []Project `json:"data"`
}

// ProjectResponse is the envelope returned by the single-project endpoints.
type ProjectResponse struct {
	Success bool    `json:"success"`
	Data    Project `json:"data"`
}

// MessageResponse is the envelope for project operations that return no
// payload, such as delete.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope used for 4xx responses on the projects API.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
