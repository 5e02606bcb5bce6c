package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File is the metadata record for one uploaded binary. Location is the
// opaque server-generated blob-store key, distinct from the document id.
type File struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Location     string             `bson:"location"`
	OriginalName string             `bson:"original_name"`
	Owner        string             `bson:"owner"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// Image is the metadata record for one uploaded image, backed by three
// blob-store objects (thumbnail, medium, re-encoded original).
type Image struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Thumbnail string             `bson:"thumbnail"`
	Medium    string             `bson:"medium"`
	Original  string             `bson:"original"`
	Owner     string             `bson:"owner"`
	CreatedAt time.Time          `bson:"created_at"`
}
