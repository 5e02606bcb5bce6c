package handler

import (
	"net/http"

	"github.com/taskpilot/taskpilot/internal/apperr"
	"github.com/taskpilot/taskpilot/internal/ctxkeys"
	"github.com/taskpilot/taskpilot/internal/dto"
	"github.com/taskpilot/taskpilot/internal/service"
)

type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	var req dto.CreateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	tag, err := h.tagService.Create(r.Context(), caller.Subject, req)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	tags, err := h.tagService.List(r.Context(), caller.Subject)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tags)
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	err := h.tagService.Delete(r.Context(), caller.Subject, r.PathValue("id"))
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.Done{Done: true})
}
