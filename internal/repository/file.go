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

type FileRepository interface {
	Create(ctx context.Context, file *model.File) (string, error)
	ByID(ctx context.Context, id string) (*model.File, error)
	CountByIDs(ctx context.Context, ids []string) (int64, error)
}

type fileRepository struct {
	col *mongo.Collection
}

func NewFileRepository(database *mongo.Database) *fileRepository {
	return &fileRepository{col: database.Collection(db.FilesCollection)}
}

func (r *fileRepository) Create(ctx context.Context, file *model.File) (string, error) {
	res, err := r.col.InsertOne(ctx, file)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	file.ID = id
	return id.Hex(), nil
}

func (r *fileRepository) ByID(ctx context.Context, id string) (*model.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	file := &model.File{}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(file)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (r *fileRepository) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	oids := hexToObjectIDs(ids)
	return r.col.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": oids}})
}
