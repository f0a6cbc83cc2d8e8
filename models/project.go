package models

import "time"

// Project is one portfolio item served by the mock projects API.
//
// Projects live only in process memory: the store is seeded at startup and
// any mutation is lost on restart. That is the documented contract of the
// endpoint, not an oversight.
type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tech        []string  `json:"tech"`
	LiveURL     string    `json:"liveUrl,omitempty"`
	GithubURL   string    `json:"githubUrl,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectPatch describes a partial update to a project. Nil fields keep
// their current value.
type ProjectPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tech        *[]string `json:"tech,omitempty"`
	LiveURL     *string   `json:"liveUrl,omitempty"`
	GithubURL   *string   `json:"githubUrl,omitempty"`
	Image       *string   `json:"image,omitempty"`
}
