package service

import (
	"context"
	"errors"
	"time"

	"github.com/taskpilot/taskpilot/internal/apperr"
	"github.com/taskpilot/taskpilot/internal/dto"
	"github.com/taskpilot/taskpilot/internal/model"
	"github.com/taskpilot/taskpilot/internal/repository"
	"github.com/taskpilot/taskpilot/internal/validation"
)

type TagService struct {
	tags repository.TagRepository
}

func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// Create deduplicates by (title, caller): creating a title the caller
// already owns returns the existing tag instead of a duplicate.
func (s *TagService) Create(ctx context.Context, caller string, req dto.CreateTagRequest) (*dto.Tag, error) {
	if err := validation.CreateTag(req); err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	existing, err := s.tags.ByTitle(ctx, caller, req.Title)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return tagDTO(existing), nil
	}

	tag := &model.Tag{
		Title:     req.Title,
		Author:    caller,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.tags.Create(ctx, tag)
	if err != nil {
		return nil, err
	}

	return tagDTO(tag), nil
}

// List returns every tag the caller owns.
func (s *TagService) List(ctx context.Context, caller string) ([]*dto.Tag, error) {
	tags, err := s.tags.ByAuthor(ctx, caller)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.Tag, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tagDTO(tag))
	}
	return out, nil
}

// Delete removes an owned tag. Todos still referencing it keep the dangling
// id, which projection drops.
func (s *TagService) Delete(ctx context.Context, caller, id string) error {
	tag, err := s.tags.ByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound()
	}
	if err != nil {
		return err
	}
	if tag.Author != caller {
		return apperr.NotFound()
	}

	return s.tags.Delete(ctx, id)
}

func tagDTO(tag *model.Tag) *dto.Tag {
	return &dto.Tag{
		ID:        tag.ID.Hex(),
		Title:     tag.Title,
		CreatedAt: tag.CreatedAt,
	}
}
