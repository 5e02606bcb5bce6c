package dto

import "time"

// Tag is the projected tag sub-object.
type Tag struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// File is the projected attachment sub-object. URL points at the asset
// passthrough route, derived from the stored location key.
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// Image is the projected image sub-object with one URL per stored variant.
type Image struct {
	ID        string    `json:"id"`
	Thumbnail string    `json:"thumbnail"`
	Medium    string    `json:"medium"`
	Original  string    `json:"original"`
	CreatedAt time.Time `json:"createdAt"`
}

// Recommendation mirrors the AI suggestion for a draft todo. It is both the
// /recommend response and the snapshot optionally stored on a todo.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}

// Todo is the fully hydrated todo returned by every todo operation.
type Todo struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Priority       string          `json:"priority"`
	Image          *Image          `json:"image"`
	Tags           []Tag           `json:"tags"`
	Attachments    []File          `json:"attachments"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Paginated wraps a page slice with the navigation flags the client needs.
type Paginated[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// Done acknowledges a delete.
type Done struct {
	Done bool `json:"done"`
}
