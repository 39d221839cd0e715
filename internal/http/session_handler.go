package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/escala/internal/application"
)

type sessionStore interface {
	CurrentUser() (application.User, bool)
	CurrentPermissions() []application.Permission
	SetCurrentUser(ctx context.Context, userID int64) (application.User, error)
	RolePermissions() application.RolePermissions
	UpdateRolePermissions(ctx context.Context, role application.Role, permissions []application.Permission) error
}

// SessionHandler exposes the active user and the role to permission mapping.
// No credential is involved: any stored user may be selected.
type SessionHandler struct {
	store     sessionStore
	responder responder
	logger    *slog.Logger
}

func NewSessionHandler(store sessionStore, logger *slog.Logger) *SessionHandler {
	base := defaultLogger(logger)
	return &SessionHandler{store: store, responder: newResponder(base), logger: base}
}

// Current serves GET /session.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	user, ok := h.store.CurrentUser()
	if !ok {
		h.responder.handleServiceError(r.Context(), w, application.ErrNoActiveUser)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{
		User:        user,
		Permissions: nonNil(h.store.CurrentPermissions()),
	})
}

// Switch serves PUT /session and makes another user active.
func (h *SessionHandler) Switch(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	user, err := h.store.SetCurrentUser(r.Context(), req.UserID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	handlerLogger(r.Context(), h.logger, "SessionHandler", "Switch", "user_id", user.ID).InfoContext(r.Context(), "active user switched")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{
		User:        user,
		Permissions: nonNil(h.store.CurrentPermissions()),
	})
}

// Roles serves GET /roles.
func (h *SessionHandler) Roles(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	mapping := h.store.RolePermissions()
	roles := make([]roleDTO, 0, len(application.Roles))
	for _, role := range application.Roles {
		roles = append(roles, roleDTO{
			ID:          role,
			Label:       role.Label(),
			Permissions: nonNil(mapping[role]),
			Editable:    role != application.RoleAdministrator,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, rolesResponse{Roles: roles})
}

// UpdateRole serves PUT /roles/{role}.
func (h *SessionHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	role := application.Role(r.PathValue("role"))

	var req rolePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if err := h.store.UpdateRolePermissions(r.Context(), role, req.Permissions); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, roleDTO{
		ID:          role,
		Label:       role.Label(),
		Permissions: nonNil(h.store.RolePermissions()[role]),
		Editable:    true,
	})
}

type sessionRequest struct {
	UserID int64 `json:"user_id,string"`
}

type sessionResponse struct {
	User        application.User         `json:"user"`
	Permissions []application.Permission `json:"permissions"`
}

type rolePermissionsRequest struct {
	Permissions []application.Permission `json:"permissions"`
}

type roleDTO struct {
	ID          application.Role         `json:"id"`
	Label       string                   `json:"label"`
	Permissions []application.Permission `json:"permissions"`
	Editable    bool                     `json:"editable"`
}

type rolesResponse struct {
	Roles []roleDTO `json:"roles"`
}
