package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/pagination"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type createTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Done        bool    `json:"done"`
}

func (req createTodoRequest) validate() error {
	var v validator
	if v.required("title", req.Title) {
		v.maxLen("title", req.Title, maxTitle)
	}
	if req.Description != nil {
		v.maxLen("description", *req.Description, maxDescription)
	}
	return v.err()
}

// parseUpdate keeps only title, description and done from the body. A
// description of null clears it; other unknown keys are ignored.
func parseUpdate(raw map[string]json.RawMessage) (services.UpdateTodoInput, error) {
	var (
		in services.UpdateTodoInput
		v  validator
	)

	if b, ok := raw["title"]; ok {
		var title string
		if err := json.Unmarshal(b, &title); err != nil {
			v.check(false, "title must be a string")
		} else if v.required("title", title) {
			v.maxLen("title", title, maxTitle)
			in.Title = &title
		}
	}

	if b, ok := raw["description"]; ok {
		var desc *string
		if err := json.Unmarshal(b, &desc); err != nil {
			v.check(false, "description must be a string or null")
		} else if desc == nil {
			in.ClearDescription = true
		} else {
			v.maxLen("description", *desc, maxDescription)
			in.Description = desc
		}
	}

	if b, ok := raw["done"]; ok {
		var done bool
		if err := json.Unmarshal(b, &done); err != nil {
			v.check(false, "done must be a boolean")
		} else {
			in.Done = &done
		}
	}

	return in, v.err()
}

type offsetResponse struct {
	Data  []*models.Todo `json:"data"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type cursorResponse struct {
	Data       []*models.Todo `json:"data"`
	NextCursor *string        `json:"nextCursor"`
}

// owner returns the authenticated user id or answers 403.
func (h *handler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	subject, ok := subjectFrom(r.Context())
	if !ok {
		writeError(w, r, h.log, common.ErrorForbidden)
		return "", false
	}
	return subject, true
}

func (h *handler) createTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req createTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	todo, err := h.todos.Create(r.Context(), ownerID, services.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Done:        req.Done,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (h *handler) getTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	todo, err := h.todos.Get(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var raw map[string]json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	in, err := parseUpdate(raw)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	todo, err := h.todos.Update(r.Context(), ownerID, id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": todo})
}

func (h *handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.todos.Delete(r.Context(), ownerID, id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, empty)
}

func (h *handler) listTodosOffset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	req, err := h.pages.ParseOffset(ownerID, r.URL.Query())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	list, err := h.todos.ListOffset(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, offsetResponse{Data: list, Page: req.Page, Limit: req.Limit})
}

func (h *handler) listTodosCursor(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	req, err := h.pages.ParseCursor(ownerID, r.URL.Query())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	list, err := h.todos.ListCursor(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp := cursorResponse{Data: list}
	if next := pagination.NextCursor(list, todoCreatedAt); next != nil && len(list) == req.Limit {
		s := pagination.FormatTime(*next)
		resp.NextCursor = &s
	}
	writeJSON(w, http.StatusOK, resp)
}

func todoCreatedAt(t *models.Todo) time.Time { return t.CreatedAt }

