package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/escala/internal/application"
)

type eventStore interface {
	Events() []application.Event
	Event(id int64) (application.Event, bool)
	AddEvent(ctx context.Context, input application.EventInput) (application.Event, error)
	UpdateEvent(ctx context.Context, event application.Event) (application.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

type EventHandler struct {
	store     eventStore
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(store eventStore, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	return &EventHandler{store: store, responder: newResponder(base), logger: base}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventsResponse{Events: nonNil(h.store.Events())})
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}
	event, found := h.store.Event(id)
	if !found {
		h.responder.handleServiceError(r.Context(), w, application.ErrNotFound)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{Event: event})
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlerLogger(r.Context(), h.logger, "EventHandler", "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	event, err := h.store.AddEvent(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, eventResponse{Event: event})
}

// Update replaces the editable fields of an event, keeping its stored
// schedule overrides.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlerLogger(r.Context(), h.logger, "EventHandler", "Update", "event_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	current, found := h.store.Event(id)
	if !found {
		h.responder.handleServiceError(r.Context(), w, application.ErrNotFound)
		return
	}
	input := req.toInput()
	current.Title = input.Title
	current.StartDate = input.StartDate
	current.EndDate = input.EndDate
	current.Location = input.Location

	event, err := h.store.UpdateEvent(r.Context(), current)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{Event: event})
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}
	if err := h.store.DeleteEvent(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type eventRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Location  string `json:"location"`
}

func (r eventRequest) toInput() application.EventInput {
	return application.EventInput{
		Title:     strings.TrimSpace(r.Title),
		StartDate: strings.TrimSpace(r.StartDate),
		EndDate:   strings.TrimSpace(r.EndDate),
		Location:  strings.TrimSpace(r.Location),
	}
}

type eventResponse struct {
	Event application.Event `json:"event"`
}

type eventsResponse struct {
	Events []application.Event `json:"events"`
}
