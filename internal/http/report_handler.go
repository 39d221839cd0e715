package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/escala/internal/application"
)

type reportStore interface {
	ParticipationReport(from, to string) ([]application.ParticipationRow, error)
	MinistryReport(from, to string) ([]application.MinistryParticipation, error)
	ServantReport(servantID int64, from, to string) ([]application.ServantParticipation, error)
	Reminders(dates ...string) []application.Reminder
	Dashboard(ref time.Time) application.Dashboard
}

// ReportHandler serves read-only views derived from schedules.
type ReportHandler struct {
	store     reportStore
	responder responder
	now       func() time.Time
}

func NewReportHandler(store reportStore, now func() time.Time, logger *slog.Logger) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{store: store, responder: newResponder(defaultLogger(logger)), now: now}
}

// Participation serves GET /reports/participation?from=&to=.
func (h *ReportHandler) Participation(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	from, to := rangeQuery(r)
	rows, err := h.store.ParticipationReport(from, to)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, participationResponse{Rows: nonNil(rows)})
}

// Ministries serves GET /reports/ministries?from=&to=.
func (h *ReportHandler) Ministries(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	from, to := rangeQuery(r)
	rows, err := h.store.MinistryReport(from, to)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, ministryReportResponse{Rows: nonNil(rows)})
}

// Servant serves GET /reports/servants/{id}?from=&to=.
func (h *ReportHandler) Servant(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidServantID)
		return
	}

	from, to := rangeQuery(r)
	rows, err := h.store.ServantReport(id, from, to)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, servantReportResponse{Rows: nonNil(rows)})
}

// Reminders serves GET /reminders?date=...&date=...
func (h *ReportHandler) Reminders(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var dates []string
	for _, value := range r.URL.Query()["date"] {
		for _, date := range strings.Split(value, ",") {
			date = strings.TrimSpace(date)
			if date == "" {
				continue
			}
			if _, err := application.ParseDate(date); err != nil {
				h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidQuery)
				return
			}
			dates = append(dates, date)
		}
	}
	if len(dates) == 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidQuery)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, remindersResponse{Reminders: nonNil(h.store.Reminders(dates...))})
}

// Dashboard serves GET /dashboard, optionally anchored with date.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ref := h.now()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := application.ParseDate(raw)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidQuery)
			return
		}
		ref = parsed
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, h.store.Dashboard(ref))
}

func rangeQuery(r *http.Request) (string, string) {
	query := r.URL.Query()
	return strings.TrimSpace(query.Get("from")), strings.TrimSpace(query.Get("to"))
}

type participationResponse struct {
	Rows []application.ParticipationRow `json:"rows"`
}

type ministryReportResponse struct {
	Rows []application.MinistryParticipation `json:"rows"`
}

type servantReportResponse struct {
	Rows []application.ServantParticipation `json:"rows"`
}

type remindersResponse struct {
	Reminders []application.Reminder `json:"reminders"`
}
