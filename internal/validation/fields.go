// Package validation rejects malformed input before it reaches persistence.
// Validators are pure: they inspect a request payload and return either nil
// or the accumulated per-field errors.
package validation

import "strings"

const (
	// ObjectIDLength is the hex length of a document store identifier.
	ObjectIDLength = 24
	// SubjectLength is the length of a subject id issued by the identity
	// provider. Moving providers would invalidate this bound.
	SubjectLength = 28
)

type FieldError struct {
	Field   string
	Message string
}

// FieldErrors concatenates to the client-facing "field: message, ..." form.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Message
	}
	return strings.Join(parts, ", ")
}

// OrNil returns fe as an error, or nil when no field failed. A typed nil
// FieldErrors must not escape as a non-nil error.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func isObjectID(s string) bool {
	if len(s) != ObjectIDLength {
		return false
	}
	for _, c := range s {
		ok := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !ok {
			return false
		}
	}
	return true
}
