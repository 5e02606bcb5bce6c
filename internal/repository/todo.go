package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskpilot/taskpilot/internal/db"
	"github.com/taskpilot/taskpilot/internal/model"
)

var ErrNotFound = errors.New("document not found")

type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) (string, error)
	ByID(ctx context.Context, id string) (*model.Todo, error)
	Count(ctx context.Context, author string) (int64, error)
	Page(ctx context.Context, author string, skip, limit int64) ([]*model.Todo, error)
	Update(ctx context.Context, id string, update model.TodoUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, author, query string) ([]*model.Todo, error)
	FilterByTags(ctx context.Context, author string, tagIDs []string) ([]*model.Todo, error)
}

type todoRepository struct {
	col *mongo.Collection
}

func NewTodoRepository(database *mongo.Database) *todoRepository {
	return &todoRepository{col: database.Collection(db.TodosCollection)}
}

func (r *todoRepository) Create(ctx context.Context, todo *model.Todo) (string, error) {
	res, err := r.col.InsertOne(ctx, todo)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	todo.ID = id
	return id.Hex(), nil
}

func (r *todoRepository) ByID(ctx context.Context, id string) (*model.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	todo := &model.Todo{}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *todoRepository) Count(ctx context.Context, author string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"author": author})
}

func (r *todoRepository) Page(ctx context.Context, author string, skip, limit int64) ([]*model.Todo, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"author": author}, opts)
	if err != nil {
		return nil, err
	}
	return decodeTodos(ctx, cur)
}

func (r *todoRepository) Update(ctx context.Context, id string, update model.TodoUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	// Tag and attachment lists are always replaced; scalar fields only when
	// supplied.
	set := bson.M{
		"tags":        update.Tags,
		"attachments": update.Attachments,
	}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Priority != nil {
		set["priority"] = *update.Priority
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *todoRepository) Search(ctx context.Context, author, query string) ([]*model.Todo, error) {
	filter := bson.M{
		"author": author,
		"$text":  bson.M{"$search": query},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeTodos(ctx, cur)
}

func (r *todoRepository) FilterByTags(ctx context.Context, author string, tagIDs []string) ([]*model.Todo, error) {
	filter := bson.M{
		"author": author,
		"tags":   bson.M{"$in": tagIDs},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeTodos(ctx, cur)
}

func decodeTodos(ctx context.Context, cur *mongo.Cursor) ([]*model.Todo, error) {
	defer func() { _ = cur.Close(ctx) }()

	todos := []*model.Todo{}
	for cur.Next(ctx) {
		todo := &model.Todo{}
		if err := cur.Decode(todo); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, cur.Err()
}
