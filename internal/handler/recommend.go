package handler

import (
	"net/http"

	"github.com/taskpilot/taskpilot/internal/apperr"
	"github.com/taskpilot/taskpilot/internal/ctxkeys"
	"github.com/taskpilot/taskpilot/internal/dto"
	"github.com/taskpilot/taskpilot/internal/service"
)

type RecommendHandler struct {
	recommendService *service.RecommendService
}

func NewRecommendHandler(recommendService *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommendService: recommendService}
}

func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	var req dto.RecommendRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	rec, err := h.recommendService.Recommend(r.Context(), req)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
