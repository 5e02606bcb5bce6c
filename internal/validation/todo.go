package validation

import (
	"fmt"

	"github.com/taskpilot/taskpilot/internal/dto"
	"github.com/taskpilot/taskpilot/internal/model"
)

// CreateTodo validates a POST /todos payload.
func CreateTodo(req dto.CreateTodoRequest) error {
	var fe FieldErrors

	if len(req.Title) < 1 || len(req.Title) > 40 {
		fe = append(fe, FieldError{"title", "must be between 1 and 40 characters"})
	}
	if !model.ValidPriority(req.Priority) {
		fe = append(fe, FieldError{"priority", "must be one of high, medium, low"})
	}
	if req.Image != nil && !isObjectID(*req.Image) {
		fe = append(fe, FieldError{"image", idMessage()})
	}
	fe = append(fe, validateIDList("tags", req.Tags)...)
	fe = append(fe, validateIDList("attachments", req.Attachments)...)

	return fe.OrNil()
}

// UpdateTodo validates a PATCH /todos/{id} payload. All scalar fields are
// optional but the tag and attachment lists stay mandatory even on a
// partial update.
func UpdateTodo(req dto.UpdateTodoRequest) error {
	var fe FieldErrors

	if req.Title != nil && (len(*req.Title) < 2 || len(*req.Title) > 40) {
		fe = append(fe, FieldError{"title", "must be between 2 and 40 characters"})
	}
	if req.Priority != nil && !model.ValidPriority(*req.Priority) {
		fe = append(fe, FieldError{"priority", "must be one of high, medium, low"})
	}
	if req.Image != nil && !isObjectID(*req.Image) {
		fe = append(fe, FieldError{"image", idMessage()})
	}
	fe = append(fe, validateIDList("tags", req.Tags)...)
	fe = append(fe, validateIDList("attachments", req.Attachments)...)

	return fe.OrNil()
}

// Pagination validates the page/perPage query parameters.
func Pagination(p dto.Pagination) error {
	var fe FieldErrors

	if p.Page < 1 {
		fe = append(fe, FieldError{"page", "must be at least 1"})
	}
	if p.PerPage < 1 {
		fe = append(fe, FieldError{"perPage", "must be at least 1"})
	}

	return fe.OrNil()
}

// Recommend validates a POST /recommend payload.
func Recommend(req dto.RecommendRequest) error {
	var fe FieldErrors

	if len(req.Title) < 1 {
		fe = append(fe, FieldError{"title", "is required"})
	}
	if len(req.Description) < 1 {
		fe = append(fe, FieldError{"description", "is required"})
	}
	if !model.ValidPriority(req.Priority) {
		fe = append(fe, FieldError{"priority", "must be one of high, medium, low"})
	}
	if req.Tags == nil {
		fe = append(fe, FieldError{"tags", "is required"})
	}

	return fe.OrNil()
}

// validateIDList requires the list to be present (may be empty) and every
// entry to be a well-formed document id.
func validateIDList(field string, ids []string) FieldErrors {
	if ids == nil {
		return FieldErrors{{field, "is required"}}
	}

	var fe FieldErrors
	for i, id := range ids {
		if !isObjectID(id) {
			fe = append(fe, FieldError{fmt.Sprintf("%s[%d]", field, i), idMessage()})
		}
	}
	return fe
}

func idMessage() string {
	return fmt.Sprintf("must be a %d character identifier", ObjectIDLength)
}
