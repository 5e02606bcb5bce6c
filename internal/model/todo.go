package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ValidPriority reports whether p is one of the three allowed values.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Todo is a stored todo document. Tag, attachment and image references are
// weak: only the ObjectID hex is stored and the referenced documents are
// resolved at projection time.
type Todo struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description"`
	Priority       string             `bson:"priority"`
	Author         string             `bson:"author"`
	Image          string             `bson:"image,omitempty"`
	Tags           []string           `bson:"tags"`
	Attachments    []string           `bson:"attachments"`
	Recommendation *Recommendation    `bson:"recommendation,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

// Recommendation is the AI suggestion snapshot optionally stored on a todo.
type Recommendation struct {
	Title       string   `bson:"title"`
	Description string   `bson:"description"`
	Priority    string   `bson:"priority"`
	Tags        []string `bson:"tags"`
}

// TodoUpdate describes a PATCH. Nil optional fields are left untouched;
// tag and attachment lists are always replaced wholesale.
type TodoUpdate struct {
	Title       *string
	Description *string
	Priority    *string
	Image       *string
	Tags        []string
	Attachments []string
}
