package validation

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// ImageConstraints defines validation rules for image uploads
var ImageConstraints = FileConstraints{
	AllowedExtensions: map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
		".gif":  true,
	},
	MaxSize: 5 << 20, // 5MB
}

// ValidateFile validates an uploaded file against a constraint set.
func ValidateFile(header *multipart.FileHeader, constraints FileConstraints) error {
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	if constraints.AllowedExtensions != nil {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !constraints.AllowedExtensions[ext] {
			return fmt.Errorf("invalid file extension: %s", ext)
		}
	}

	return nil
}
