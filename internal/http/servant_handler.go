package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/escala/internal/application"
)

type servantStore interface {
	ListServants(filter application.ServantFilter) []application.Servant
	EligibleServants(functionID int) []application.Servant
	Servant(id int64) (application.Servant, bool)
	AddServant(ctx context.Context, servant application.Servant) (application.Servant, error)
	UpdateServant(ctx context.Context, servant application.Servant) (application.Servant, error)
	DeleteServant(ctx context.Context, id int64) error
}

type ServantHandler struct {
	store     servantStore
	responder responder
	logger    *slog.Logger
}

func NewServantHandler(store servantStore, logger *slog.Logger) *ServantHandler {
	base := defaultLogger(logger)
	return &ServantHandler{store: store, responder: newResponder(base), logger: base}
}

func (h *ServantHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ServantHandler", operation, attrs...)
}

// List serves GET /servants?q=&ministry_id=&active=true.
func (h *ServantHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filter := application.ServantFilter{NameQuery: strings.TrimSpace(query.Get("q"))}
	if raw := strings.TrimSpace(query.Get("ministry_id")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidQuery)
			return
		}
		filter.MinistryID = application.MinistryID(id)
	}
	if raw := strings.TrimSpace(query.Get("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidQuery)
			return
		}
		filter.ActiveOnly = active
	}

	servants := h.store.ListServants(filter)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, servantsResponse{Servants: nonNil(servants)})
}

// Eligible serves GET /functions/{id}/servants.
func (h *ServantHandler) Eligible(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	functionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || functionID <= 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidFunction)
		return
	}

	servants := h.store.EligibleServants(functionID)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, servantsResponse{Servants: nonNil(servants)})
}

func (h *ServantHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidServantID)
		return
	}

	servant, found := h.store.Servant(id)
	if !found {
		h.responder.handleServiceError(r.Context(), w, application.ErrNotFound)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, servantResponse{Servant: servant})
}

func (h *ServantHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req servantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode servant request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	servant, err := h.store.AddServant(r.Context(), req.toServant(0))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "Create", "servant_id", servant.ID).InfoContext(r.Context(), "servant created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, servantResponse{Servant: servant})
}

func (h *ServantHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidServantID)
		return
	}

	var req servantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "servant_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode servant update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	servant, err := h.store.UpdateServant(r.Context(), req.toServant(id))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, servantResponse{Servant: servant})
}

func (h *ServantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidServantID)
		return
	}

	if err := h.store.DeleteServant(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type servantRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Photo       string `json:"photo"`
	FunctionIDs []int  `json:"function_ids"`
	Active      *bool  `json:"active"`
}

// toServant builds the servant value. Active defaults to true when omitted.
func (r servantRequest) toServant(id int64) application.Servant {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return application.Servant{
		ID:          id,
		Name:        strings.TrimSpace(r.Name),
		Phone:       strings.TrimSpace(r.Phone),
		Photo:       strings.TrimSpace(r.Photo),
		FunctionIDs: r.FunctionIDs,
		Active:      active,
	}
}

type servantResponse struct {
	Servant application.Servant `json:"servant"`
}

type servantsResponse struct {
	Servants []application.Servant `json:"servants"`
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
