package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/taskpilot/taskpilot/internal/apperr"
	"github.com/taskpilot/taskpilot/internal/ctxkeys"
	"github.com/taskpilot/taskpilot/internal/dto"
	"github.com/taskpilot/taskpilot/internal/service"
)

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	var req dto.CreateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	todo, err := h.todoService.Create(r.Context(), caller.Subject, req)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	// Unparsable values stay zero and are rejected by validation.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))

	result, err := h.todoService.List(r.Context(), caller.Subject, dto.Pagination{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	todo, err := h.todoService.Get(r.Context(), caller.Subject, r.PathValue("id"))
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	var req dto.UpdateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	todo, err := h.todoService.Update(r.Context(), caller.Subject, r.PathValue("id"), req)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	err := h.todoService.Delete(r.Context(), caller.Subject, r.PathValue("id"))
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.Done{Done: true})
}

func (h *TodoHandler) Search(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	todos, err := h.todoService.Search(r.Context(), caller.Subject, r.URL.Query().Get("q"))
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Filter(w http.ResponseWriter, r *http.Request) {
	caller := ctxkeys.Identity(r.Context())
	if caller == nil {
		apperr.Write(w, apperr.Unauthorized())
		return
	}

	ids := strings.Split(r.URL.Query().Get("t"), ",")
	todos, err := h.todoService.Filter(r.Context(), caller.Subject, ids)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}
