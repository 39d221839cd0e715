package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/escala/internal/application"
)

type scheduleStore interface {
	Schedules() []application.Schedule
	SchedulesBetween(from, to string) ([]application.Schedule, error)
	GetScheduleByDate(date string) (application.Schedule, bool)
	AddSchedule(ctx context.Context, schedule application.Schedule) (application.Schedule, error)
	UpdateSchedule(ctx context.Context, schedule application.Schedule) (application.Schedule, error)
	NewScheduleItem(functionID int, servantID int64, shiftID int) application.ScheduleItem
}

type ScheduleHandler struct {
	store     scheduleStore
	responder responder
	logger    *slog.Logger
}

func NewScheduleHandler(store scheduleStore, logger *slog.Logger) *ScheduleHandler {
	base := defaultLogger(logger)
	return &ScheduleHandler{store: store, responder: newResponder(base), logger: base}
}

// List serves GET /schedules, optionally narrowed with from and to.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	from, to := strings.TrimSpace(query.Get("from")), strings.TrimSpace(query.Get("to"))
	if from == "" && to == "" {
		h.responder.writeJSON(r.Context(), w, http.StatusOK, schedulesResponse{Schedules: nonNil(h.store.Schedules())})
		return
	}

	schedules, err := h.store.SchedulesBetween(from, to)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, schedulesResponse{Schedules: nonNil(schedules)})
}

// Get serves GET /schedules/{date}.
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	schedule, ok := h.store.GetScheduleByDate(r.PathValue("date"))
	if !ok {
		h.responder.handleServiceError(r.Context(), w, application.ErrNotFound)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, scheduleResponse{Schedule: schedule})
}

// Create serves POST /schedules. A schedule already stored for the same date
// is replaced.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	schedule, err := h.store.AddSchedule(r.Context(), req.toSchedule(req.Date))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	handlerLogger(r.Context(), h.logger, "ScheduleHandler", "Create", "date", schedule.Date).InfoContext(r.Context(), "schedule stored")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, scheduleResponse{Schedule: schedule})
}

// Put serves PUT /schedules/{date}. The date in the path wins over the body.
func (h *ScheduleHandler) Put(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	schedule, err := h.store.UpdateSchedule(r.Context(), req.toSchedule(r.PathValue("date")))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, scheduleResponse{Schedule: schedule})
}

// NewItem serves POST /schedule-items. The item is only stored once it is
// submitted as part of a schedule.
func (h *ScheduleHandler) NewItem(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req scheduleItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	item := h.store.NewScheduleItem(req.FunctionID, req.ServantID, req.ShiftID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, scheduleItemResponse{Item: item})
}

type scheduleRequest struct {
	Date      string                     `json:"date"`
	Items     []application.ScheduleItem `json:"items"`
	Notes     string                     `json:"notes"`
	Published bool                       `json:"published"`
}

func (r scheduleRequest) toSchedule(date string) application.Schedule {
	return application.Schedule{
		Date:      strings.TrimSpace(date),
		Items:     r.Items,
		Notes:     strings.TrimSpace(r.Notes),
		Published: r.Published,
	}
}

type scheduleItemRequest struct {
	FunctionID int   `json:"function_id"`
	ServantID  int64 `json:"servant_id,string"`
	ShiftID    int   `json:"shift_id"`
}

type scheduleResponse struct {
	Schedule application.Schedule `json:"schedule"`
}

type schedulesResponse struct {
	Schedules []application.Schedule `json:"schedules"`
}

type scheduleItemResponse struct {
	Item application.ScheduleItem `json:"item"`
}
