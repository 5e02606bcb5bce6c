package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskpilot/taskpilot/internal/db"
	"github.com/taskpilot/taskpilot/internal/model"
)

type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) (string, error)
	ByID(ctx context.Context, id string) (*model.Image, error)
}

type imageRepository struct {
	col *mongo.Collection
}

func NewImageRepository(database *mongo.Database) *imageRepository {
	return &imageRepository{col: database.Collection(db.ImagesCollection)}
}

func (r *imageRepository) Create(ctx context.Context, image *model.Image) (string, error) {
	res, err := r.col.InsertOne(ctx, image)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	image.ID = id
	return id.Hex(), nil
}

func (r *imageRepository) ByID(ctx context.Context, id string) (*model.Image, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	image := &model.Image{}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(image)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return image, nil
}
