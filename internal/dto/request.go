// Package dto defines the request payloads accepted and the projected
// response objects returned by the HTTP surface. Stored documents never
// leave the service layer; responses embed resolved sub-objects instead of
// raw reference ids.
package dto

// CreateTodoRequest is the POST /todos payload. Author is never taken from
// the client; it is stamped from the verified caller identity.
type CreateTodoRequest struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Priority       string          `json:"priority"`
	Image          *string         `json:"image,omitempty"`
	Tags           []string        `json:"tags"`
	Attachments    []string        `json:"attachments"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// UpdateTodoRequest is the PATCH /todos/{id} payload. Scalar fields are
// optional; tag and attachment lists are mandatory and replace the stored
// lists wholesale.
type UpdateTodoRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Priority    *string  `json:"priority,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Tags        []string `json:"tags"`
	Attachments []string `json:"attachments"`
}

// CreateTagRequest is the POST /tags payload.
type CreateTagRequest struct {
	Title string `json:"title"`
}

// Pagination carries the parsed page/perPage query parameters.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// RecommendRequest is the POST /recommend payload: the draft todo the AI
// should improve.
type RecommendRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}
