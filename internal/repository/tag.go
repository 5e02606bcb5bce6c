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

type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) (string, error)
	ByID(ctx context.Context, id string) (*model.Tag, error)
	ByTitle(ctx context.Context, author, title string) (*model.Tag, error)
	ByAuthor(ctx context.Context, author string) ([]*model.Tag, error)
	CountByIDs(ctx context.Context, ids []string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type tagRepository struct {
	col *mongo.Collection
}

func NewTagRepository(database *mongo.Database) *tagRepository {
	return &tagRepository{col: database.Collection(db.TagsCollection)}
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) (string, error) {
	res, err := r.col.InsertOne(ctx, tag)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	tag.ID = id
	return id.Hex(), nil
}

func (r *tagRepository) ByID(ctx context.Context, id string) (*model.Tag, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	tag := &model.Tag{}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *tagRepository) ByTitle(ctx context.Context, author, title string) (*model.Tag, error) {
	tag := &model.Tag{}
	err := r.col.FindOne(ctx, bson.M{"author": author, "title": title}).Decode(tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *tagRepository) ByAuthor(ctx context.Context, author string) ([]*model.Tag, error) {
	cur, err := r.col.Find(ctx, bson.M{"author": author})
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	tags := []*model.Tag{}
	for cur.Next(ctx) {
		tag := &model.Tag{}
		if err := cur.Decode(tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, cur.Err()
}

// CountByIDs counts how many of the given ids resolve to existing tags.
// Malformed ids simply do not match, so they count against the caller.
func (r *tagRepository) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	oids := hexToObjectIDs(ids)
	return r.col.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *tagRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func hexToObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return oids
}
