package service_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskpilot/taskpilot/internal/model"
	"github.com/taskpilot/taskpilot/internal/repository"
)

// In-memory repository implementations backing the service tests. They mirror
// the lookup and not-found semantics of the real implementations: malformed
// ids behave like missing documents.

type fakeTodoRepo struct {
	todos map[string]*model.Todo
	order []string
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[string]*model.Todo{}}
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *model.Todo) (string, error) {
	if todo.ID.IsZero() {
		todo.ID = primitive.NewObjectID()
	}
	id := todo.ID.Hex()
	r.todos[id] = todo
	r.order = append(r.order, id)
	return id, nil
}

func (r *fakeTodoRepo) ByID(_ context.Context, id string) (*model.Todo, error) {
	todo, ok := r.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return todo, nil
}

func (r *fakeTodoRepo) Count(_ context.Context, author string) (int64, error) {
	var n int64
	for _, id := range r.order {
		if r.todos[id].Author == author {
			n++
		}
	}
	return n, nil
}

func (r *fakeTodoRepo) Page(_ context.Context, author string, skip, limit int64) ([]*model.Todo, error) {
	out := []*model.Todo{}
	var seen int64
	for _, id := range r.order {
		todo := r.todos[id]
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

func (r *fakeTodoRepo) Update(_ context.Context, id string, update model.TodoUpdate) error {
	todo, ok := r.todos[id]
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

func (r *fakeTodoRepo) Delete(_ context.Context, id string) error {
	delete(r.todos, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeTodoRepo) Search(_ context.Context, author, query string) ([]*model.Todo, error) {
	query = strings.ToLower(query)
	out := []*model.Todo{}
	for _, id := range r.order {
		todo := r.todos[id]
		if todo.Author != author {
			continue
		}
		text := strings.ToLower(todo.Title + " " + todo.Description)
		if strings.Contains(text, query) {
			out = append(out, todo)
		}
	}
	return out, nil
}

func (r *fakeTodoRepo) FilterByTags(_ context.Context, author string, tagIDs []string) ([]*model.Todo, error) {
	wanted := map[string]bool{}
	for _, id := range tagIDs {
		wanted[id] = true
	}

	out := []*model.Todo{}
	for _, id := range r.order {
		todo := r.todos[id]
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

type fakeTagRepo struct {
	tags map[string]*model.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: map[string]*model.Tag{}}
}

func (r *fakeTagRepo) Create(_ context.Context, tag *model.Tag) (string, error) {
	if tag.ID.IsZero() {
		tag.ID = primitive.NewObjectID()
	}
	id := tag.ID.Hex()
	r.tags[id] = tag
	return id, nil
}

func (r *fakeTagRepo) ByID(_ context.Context, id string) (*model.Tag, error) {
	tag, ok := r.tags[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return tag, nil
}

func (r *fakeTagRepo) ByTitle(_ context.Context, author, title string) (*model.Tag, error) {
	for _, tag := range r.tags {
		if tag.Author == author && tag.Title == title {
			return tag, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTagRepo) ByAuthor(_ context.Context, author string) ([]*model.Tag, error) {
	out := []*model.Tag{}
	for _, tag := range r.tags {
		if tag.Author == author {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) CountByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.tags[id]; ok {
			n++
		}
	}
	return n, nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id string) error {
	delete(r.tags, id)
	return nil
}

type fakeFileRepo struct {
	files  map[string]*model.File
	events *[]string
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[string]*model.File{}}
}

func (r *fakeFileRepo) Create(_ context.Context, file *model.File) (string, error) {
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	id := file.ID.Hex()
	r.files[id] = file
	if r.events != nil {
		*r.events = append(*r.events, "metadata")
	}
	return id, nil
}

func (r *fakeFileRepo) ByID(_ context.Context, id string) (*model.File, error) {
	file, ok := r.files[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return file, nil
}

func (r *fakeFileRepo) CountByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.files[id]; ok {
			n++
		}
	}
	return n, nil
}

type fakeImageRepo struct {
	images map[string]*model.Image
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: map[string]*model.Image{}}
}

func (r *fakeImageRepo) Create(_ context.Context, image *model.Image) (string, error) {
	if image.ID.IsZero() {
		image.ID = primitive.NewObjectID()
	}
	id := image.ID.Hex()
	r.images[id] = image
	return id, nil
}

func (r *fakeImageRepo) ByID(_ context.Context, id string) (*model.Image, error) {
	image, ok := r.images[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return image, nil
}

// fakeStorage sees concurrent saves from the image variant group, so every
// method locks.
type fakeStorage struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	events  *[]string
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: map[string][]byte{}}
}

func (s *fakeStorage) Save(_ context.Context, key string, body io.Reader) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	if s.events != nil {
		*s.events = append(*s.events, "blob")
	}
	return nil
}

func (s *fakeStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// fakeAIClient routes each completion by a marker in the system prompt, which
// lets one fake answer all four recommendation calls differently. Calls
// arrive concurrently, so the draft log is guarded.
type fakeAIClient struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	drafts    []string
}

func (c *fakeAIClient) Complete(_ context.Context, system, user string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.mu.Lock()
	c.drafts = append(c.drafts, user)
	c.mu.Unlock()
	for marker, response := range c.responses {
		if strings.Contains(system, marker) {
			return response, nil
		}
	}
	return "", nil
}
