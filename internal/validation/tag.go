package validation

import "github.com/taskpilot/taskpilot/internal/dto"

// CreateTag validates a POST /tags payload.
func CreateTag(req dto.CreateTagRequest) error {
	var fe FieldErrors

	if len(req.Title) < 1 {
		fe = append(fe, FieldError{"title", "is required"})
	}

	return fe.OrNil()
}
