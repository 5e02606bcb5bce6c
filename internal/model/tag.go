package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag is owned by and only visible to its author. The (title, author) pair
// is deduplicated at creation time.
type Tag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Author    string             `bson:"author"`
	CreatedAt time.Time          `bson:"createdAt"`
}
