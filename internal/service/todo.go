package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskpilot/taskpilot/internal/apperr"
	"github.com/taskpilot/taskpilot/internal/dto"
	"github.com/taskpilot/taskpilot/internal/model"
	"github.com/taskpilot/taskpilot/internal/repository"
	"github.com/taskpilot/taskpilot/internal/validation"
)

// TodoService owns the request-to-persistence pipeline for todos:
// validation, relational integrity checks, persistence and projection.
type TodoService struct {
	todos     repository.TodoRepository
	tags      repository.TagRepository
	files     repository.FileRepository
	images    repository.ImageRepository
	assetBase string
}

func NewTodoService(
	todos repository.TodoRepository,
	tags repository.TagRepository,
	files repository.FileRepository,
	images repository.ImageRepository,
	assetBase string,
) *TodoService {
	return &TodoService{
		todos:     todos,
		tags:      tags,
		files:     files,
		images:    images,
		assetBase: assetBase,
	}
}

// Create validates the payload, stamps the author from the caller identity,
// verifies every referenced tag/attachment/image exists and persists the
// todo with a server-set creation timestamp.
func (s *TodoService) Create(ctx context.Context, caller string, req dto.CreateTodoRequest) (*dto.Todo, error) {
	if err := validation.CreateTodo(req); err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	err := s.checkRelations(ctx, req.Tags, req.Attachments, req.Image)
	if err != nil {
		return nil, err
	}

	todo := &model.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Author:      caller,
		Tags:        req.Tags,
		Attachments: req.Attachments,
		CreatedAt:   time.Now().UTC(),
	}
	if req.Image != nil {
		todo.Image = *req.Image
	}
	if req.Recommendation != nil {
		todo.Recommendation = &model.Recommendation{
			Title:       req.Recommendation.Title,
			Description: req.Recommendation.Description,
			Priority:    req.Recommendation.Priority,
			Tags:        req.Recommendation.Tags,
		}
	}

	_, err = s.todos.Create(ctx, todo)
	if err != nil {
		return nil, err
	}

	return s.project(ctx, todo)
}

// List returns one page of the caller's todos in natural storage order.
// Total and the navigation flags are scoped to the caller.
func (s *TodoService) List(ctx context.Context, caller string, p dto.Pagination) (*dto.Paginated[*dto.Todo], error) {
	if err := validation.Pagination(p); err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	total, err := s.todos.Count(ctx, caller)
	if err != nil {
		return nil, err
	}

	skip := int64(p.Page-1) * int64(p.PerPage)
	todos, err := s.todos.Page(ctx, caller, skip, int64(p.PerPage))
	if err != nil {
		return nil, err
	}

	items, err := s.projectAll(ctx, todos)
	if err != nil {
		return nil, err
	}

	return &dto.Paginated[*dto.Todo]{
		Items:       items,
		Total:       total,
		HasNext:     int64(p.Page)*int64(p.PerPage) < total,
		HasPrevious: p.Page > 1,
	}, nil
}

// Get fetches one todo. Absence and foreign ownership are both reported as
// not found so existence never leaks to non-owners.
func (s *TodoService) Get(ctx context.Context, caller, id string) (*dto.Todo, error) {
	todo, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, todo)
}

// Update replaces the mutable fields of an owned todo after re-running the
// relational integrity checks.
func (s *TodoService) Update(ctx context.Context, caller, id string, req dto.UpdateTodoRequest) (*dto.Todo, error) {
	if err := validation.UpdateTodo(req); err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	_, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	err = s.checkRelations(ctx, req.Tags, req.Attachments, req.Image)
	if err != nil {
		return nil, err
	}

	err = s.todos.Update(ctx, id, model.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Image:       req.Image,
		Tags:        req.Tags,
		Attachments: req.Attachments,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound()
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.todos.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, updated)
}

// Delete removes an owned todo. References held by the todo are weak, so
// nothing else is touched.
func (s *TodoService) Delete(ctx context.Context, caller, id string) error {
	_, err := s.owned(ctx, caller, id)
	if err != nil {
		return err
	}
	return s.todos.Delete(ctx, id)
}

// Search runs a full-text match on title/description over the caller's own
// todos and returns the unpaginated projected list.
func (s *TodoService) Search(ctx context.Context, caller, query string) ([]*dto.Todo, error) {
	todos, err := s.todos.Search(ctx, caller, query)
	if err != nil {
		return nil, err
	}
	return s.projectAll(ctx, todos)
}

// Filter returns the caller's todos whose tag lists intersect the given
// tag ids.
func (s *TodoService) Filter(ctx context.Context, caller string, tagIDs []string) ([]*dto.Todo, error) {
	todos, err := s.todos.FilterByTags(ctx, caller, tagIDs)
	if err != nil {
		return nil, err
	}
	return s.projectAll(ctx, todos)
}

func (s *TodoService) owned(ctx context.Context, caller, id string) (*model.Todo, error) {
	todo, err := s.todos.ByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound()
	}
	if err != nil {
		return nil, err
	}
	if todo.Author != caller {
		// Not the owner: indistinguishable from absence.
		return nil, apperr.NotFound()
	}
	return todo, nil
}

// checkRelations requires every referenced id to resolve to an existing
// record. The check is advisory: a referenced record can still be deleted
// between this check and the write, leaving a dangling reference that
// projection later drops.
func (s *TodoService) checkRelations(ctx context.Context, tagIDs, attachmentIDs []string, imageID *string) error {
	tagCount, err := s.tags.CountByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	if tagCount != int64(len(tagIDs)) {
		return apperr.Invalid("invalid tag relation")
	}

	attachmentCount, err := s.files.CountByIDs(ctx, attachmentIDs)
	if err != nil {
		return err
	}
	if attachmentCount != int64(len(attachmentIDs)) {
		return apperr.Invalid("invalid attachment relation")
	}

	if imageID != nil {
		_, err := s.images.ByID(ctx, *imageID)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Invalid("invalid image relation")
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// project expands a stored todo into its hydrated DTO, resolving each
// reference with one lookup. Dangling references are dropped rather than
// failing the whole projection.
func (s *TodoService) project(ctx context.Context, todo *model.Todo) (*dto.Todo, error) {
	out := &dto.Todo{
		ID:          todo.ID.Hex(),
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		Tags:        []dto.Tag{},
		Attachments: []dto.File{},
		CreatedAt:   todo.CreatedAt,
	}

	if todo.Image != "" {
		image, err := s.images.ByID(ctx, todo.Image)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if image != nil {
			out.Image = &dto.Image{
				ID:        image.ID.Hex(),
				Thumbnail: assetURL(s.assetBase, image.Thumbnail),
				Medium:    assetURL(s.assetBase, image.Medium),
				Original:  assetURL(s.assetBase, image.Original),
				CreatedAt: image.CreatedAt,
			}
		}
	}

	for _, id := range todo.Attachments {
		file, err := s.files.ByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out.Attachments = append(out.Attachments, dto.File{
			ID:        file.ID.Hex(),
			Name:      file.OriginalName,
			URL:       assetURL(s.assetBase, file.Location),
			CreatedAt: file.CreatedAt,
		})
	}

	for _, id := range todo.Tags {
		tag, err := s.tags.ByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out.Tags = append(out.Tags, dto.Tag{
			ID:        tag.ID.Hex(),
			Title:     tag.Title,
			CreatedAt: tag.CreatedAt,
		})
	}

	if todo.Recommendation != nil {
		out.Recommendation = &dto.Recommendation{
			Title:       todo.Recommendation.Title,
			Description: todo.Recommendation.Description,
			Priority:    todo.Recommendation.Priority,
			Tags:        todo.Recommendation.Tags,
		}
	}

	return out, nil
}

func (s *TodoService) projectAll(ctx context.Context, todos []*model.Todo) ([]*dto.Todo, error) {
	items := make([]*dto.Todo, 0, len(todos))
	for _, todo := range todos {
		item, err := s.project(ctx, todo)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// assetURL builds the public URL for a stored location key.
func assetURL(base, location string) string {
	return strings.TrimSuffix(base, "/") + "/" + location
}
