package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/taskpilot/taskpilot/internal/apperr"
	"github.com/taskpilot/taskpilot/internal/ctxkeys"
	"github.com/taskpilot/taskpilot/internal/service"
	"github.com/taskpilot/taskpilot/internal/validation"
)

// maxMultipartMemory bounds the in-memory part of multipart parsing; larger
// bodies spill to temp files.
const maxMultipartMemory = 32 << 20

type UploadHandler struct {
	fileService *service.FileService
}

func NewUploadHandler(fileService *service.FileService) *UploadHandler {
	return &UploadHandler{fileService: fileService}
}

func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	err := r.ParseMultipartForm(maxMultipartMemory)
	if err != nil {
		apperr.Write(w, apperr.Invalid("failed to parse multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apperr.Write(w, apperr.Invalid("a valid file in the file field is expected"))
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.fileService.UploadFile(r.Context(), caller.Subject, header.Filename, file)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	err := r.ParseMultipartForm(maxMultipartMemory)
	if err != nil {
		apperr.Write(w, apperr.Invalid("failed to parse multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apperr.Write(w, apperr.Invalid("a valid image file in the file field is expected"))
		return
	}
	defer func() { _ = file.Close() }()

	err = validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		apperr.Write(w, apperr.Invalid(err.Error()))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	result, err := h.fileService.UploadImage(r.Context(), caller.Subject, data)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Asset streams the blob identified by a location key. The route is
// unauthenticated: the opaque key is the capability.
func (h *UploadHandler) Asset(w http.ResponseWriter, r *http.Request) {
	body, err := h.fileService.OpenAsset(r.Context(), r.PathValue("id"))
	if err != nil {
		apperr.Write(w, err)
		return
	}
	defer func() { _ = body.Close() }()

	w.Header().Set("Content-Type", "application/octet-stream")
	_, err = io.Copy(w, body)
	if err != nil {
		slog.Error("failed to stream asset", "error", err)
	}
}
