package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/escala/internal/application"
	"github.com/example/escala/internal/logging"
)

var (
	errBadRequestBody   = errors.New("Formato de requisição inválido.")
	errInvalidServantID = errors.New("Identificador de servo inválido.")
	errInvalidUserID    = errors.New("Identificador de usuário inválido.")
	errInvalidEventID   = errors.New("Identificador de evento inválido.")
	errInvalidFunction  = errors.New("Identificador de função inválido.")
	errInvalidQuery     = errors.New("Parâmetros de consulta inválidos.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrImmutableRole):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "IMMUTABLE_ROLE",
			Message:   "As permissões do Administrador não podem ser alteradas.",
		})
	case errors.Is(err, application.ErrNoActiveUser):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "Nenhum usuário ativo."})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: localizedStatusMessage(http.StatusNotFound)})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: localizedStatusMessage(http.StatusUnprocessableEntity),
				Errors:  localizeValidationErrors(vErr),
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: localizedStatusMessage(http.StatusInternalServerError)})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, r.logger)
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "O conteúdo da requisição está incorreto."
	case http.StatusNotFound:
		return "O recurso solicitado não foi encontrado."
	case http.StatusConflict:
		return "A requisição conflita com o estado atual do recurso."
	case http.StatusUnprocessableEntity:
		return "Há erros nos dados informados."
	default:
		return "Ocorreu um erro interno no servidor."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "date must be YYYY-MM-DD":
		return "A data deve estar no formato AAAA-MM-DD."
	case "end date must not precede start date":
		return "A data final não pode ser anterior à data inicial."
	case "item id is duplicated":
		return "O identificador do item está duplicado."
	case "function does not exist":
		return "A função informada não existe."
	case "shift does not exist":
		return "O turno informado não existe."
	case "role is invalid":
		return "O papel informado é inválido."
	default:
		if strings.HasPrefix(message, "unknown function id:") {
			return "Função inexistente: " + strings.TrimSpace(strings.TrimPrefix(message, "unknown function id:"))
		}
		if strings.HasPrefix(message, "unknown permission:") {
			return "Permissão inexistente: " + strings.TrimSpace(strings.TrimPrefix(message, "unknown permission:"))
		}
		return message
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
