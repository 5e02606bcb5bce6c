package handler_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskpilot/taskpilot/internal/model"
	"github.com/taskpilot/taskpilot/internal/repository"
)

// Map-backed stand-ins for the persistence and blob layers, just enough to
// drive the handlers through real services.

type todoStore struct {
	todos map[string]*model.Todo
	order []string
}

func newTodoStore() *todoStore {
	return &todoStore{todos: map[string]*model.Todo{}}
}

func (s *todoStore) Create(_ context.Context, todo *model.Todo) (string, error) {
	if todo.ID.IsZero() {
		todo.ID = primitive.NewObjectID()
	}
	id := todo.ID.Hex()
	s.todos[id] = todo
	s.order = append(s.order, id)
	return id, nil
}

func (s *todoStore) ByID(_ context.Context, id string) (*model.Todo, error) {
	todo, ok := s.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return todo, nil
}

func (s *todoStore) Count(_ context.Context, author string) (int64, error) {
	var n int64
	for _, id := range s.order {
		if s.todos[id].Author == author {
			n++
		}
	}
	return n, nil
}

func (s *todoStore) Page(_ context.Context, author string, skip, limit int64) ([]*model.Todo, error) {
	out := []*model.Todo{}
	var seen int64
	for _, id := range s.order {
		todo := s.todos[id]
		if todo.Author != author {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		if int64(len(out)) == limit {
			break
		}
		out = append(out, todo)
	}
	return out, nil
}

func (s *todoStore) Update(_ context.Context, id string, update model.TodoUpdate) error {
	todo, ok := s.todos[id]
	if !ok {
		return repository.ErrNotFound
	}
	todo.Tags = update.Tags
	todo.Attachments = update.Attachments
	if update.Title != nil {
		todo.Title = *update.Title
	}
	if update.Description != nil {
		todo.Description = *update.Description
	}
	if update.Priority != nil {
		todo.Priority = *update.Priority
	}
	if update.Image != nil {
		todo.Image = *update.Image
	}
	return nil
}

func (s *todoStore) Delete(_ context.Context, id string) error {
	delete(s.todos, id)
	return nil
}

func (s *todoStore) Search(_ context.Context, author, query string) ([]*model.Todo, error) {
	out := []*model.Todo{}
	for _, id := range s.order {
		todo := s.todos[id]
		if todo.Author == author && strings.Contains(strings.ToLower(todo.Title), strings.ToLower(query)) {
			out = append(out, todo)
		}
	}
	return out, nil
}

func (s *todoStore) FilterByTags(_ context.Context, author string, tagIDs []string) ([]*model.Todo, error) {
	wanted := map[string]bool{}
	for _, id := range tagIDs {
		wanted[id] = true
	}
	out := []*model.Todo{}
	for _, id := range s.order {
		todo := s.todos[id]
		if todo.Author != author {
			continue
		}
		for _, tagID := range todo.Tags {
			if wanted[tagID] {
				out = append(out, todo)
				break
			}
		}
	}
	return out, nil
}

type tagStore struct {
	tags map[string]*model.Tag
}

func newTagStore() *tagStore {
	return &tagStore{tags: map[string]*model.Tag{}}
}

func (s *tagStore) Create(_ context.Context, tag *model.Tag) (string, error) {
	if tag.ID.IsZero() {
		tag.ID = primitive.NewObjectID()
	}
	id := tag.ID.Hex()
	s.tags[id] = tag
	return id, nil
}

func (s *tagStore) ByID(_ context.Context, id string) (*model.Tag, error) {
	tag, ok := s.tags[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return tag, nil
}

func (s *tagStore) ByTitle(_ context.Context, author, title string) (*model.Tag, error) {
	for _, tag := range s.tags {
		if tag.Author == author && tag.Title == title {
			return tag, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *tagStore) ByAuthor(_ context.Context, author string) ([]*model.Tag, error) {
	out := []*model.Tag{}
	for _, tag := range s.tags {
		if tag.Author == author {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (s *tagStore) CountByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := s.tags[id]; ok {
			n++
		}
	}
	return n, nil
}

func (s *tagStore) Delete(_ context.Context, id string) error {
	delete(s.tags, id)
	return nil
}

type fileStore struct {
	files map[string]*model.File
}

func newFileStore() *fileStore {
	return &fileStore{files: map[string]*model.File{}}
}

func (s *fileStore) Create(_ context.Context, file *model.File) (string, error) {
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	id := file.ID.Hex()
	s.files[id] = file
	return id, nil
}

func (s *fileStore) ByID(_ context.Context, id string) (*model.File, error) {
	file, ok := s.files[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return file, nil
}

func (s *fileStore) CountByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := s.files[id]; ok {
			n++
		}
	}
	return n, nil
}

type imageStore struct {
	images map[string]*model.Image
}

func newImageStore() *imageStore {
	return &imageStore{images: map[string]*model.Image{}}
}

func (s *imageStore) Create(_ context.Context, image *model.Image) (string, error) {
	if image.ID.IsZero() {
		image.ID = primitive.NewObjectID()
	}
	id := image.ID.Hex()
	s.images[id] = image
	return id, nil
}

func (s *imageStore) ByID(_ context.Context, id string) (*model.Image, error) {
	image, ok := s.images[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return image, nil
}

type blobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newBlobStore() *blobStore {
	return &blobStore{blobs: map[string][]byte{}}
}

func (s *blobStore) Save(_ context.Context, key string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

func (s *blobStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *blobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func seedTag(t *testing.T, tags *tagStore, author, title string) string {
	t.Helper()
	id, err := tags.Create(context.Background(), &model.Tag{
		Title:     title,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return id
}

// stubAIClient answers every completion with the same canned text.
type stubAIClient struct {
	response string
}

func (c *stubAIClient) Complete(_ context.Context, _, _ string) (string, error) {
	return c.response, nil
}
