package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerLogger(t *testing.T) {
	t.Parallel()

	t.Run("fallback logger carries the request id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fallback := slog.New(slog.NewJSONHandler(&buf, nil))
		ctx := ContextWithRequestID(context.Background(), "req-42")

		handlerLogger(ctx, fallback, "ServantHandler", "Create", "servant_id", 7).InfoContext(ctx, "servant created")

		out := buf.String()
		for _, want := range []string{`"request_id":"req-42"`, `"handler":"ServantHandler"`, `"operation":"Create"`, `"servant_id":7`} {
			if !strings.Contains(out, want) {
				t.Fatalf("expected %s in %s", want, out)
			}
		}
	})

	t.Run("request logger is not tagged twice", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var fallbackBuf bytes.Buffer
		fallback := slog.New(slog.NewJSONHandler(&fallbackBuf, nil))

		handler := RequestLogger(slog.New(slog.NewJSONHandler(&buf, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerLogger(r.Context(), fallback, "EventHandler", "").InfoContext(r.Context(), "handled")
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events", nil))

		if fallbackBuf.Len() != 0 {
			t.Fatalf("fallback logger should stay unused, got %s", fallbackBuf.String())
		}
		var line string
		for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			if strings.Contains(l, `"msg":"handled"`) {
				line = l
			}
		}
		if line == "" {
			t.Fatalf("handler record missing: %s", buf.String())
		}
		if strings.Count(line, `"request_id"`) != 1 {
			t.Fatalf("expected a single request_id, got %s", line)
		}
		if !strings.Contains(line, `"path":"/events"`) || strings.Contains(line, `"operation"`) {
			t.Fatalf("unexpected attributes: %s", line)
		}
	})

	t.Run("nil fallback uses the default logger", func(t *testing.T) {
		t.Parallel()

		if handlerLogger(context.Background(), nil, "CatalogHandler", "Get") == nil {
			t.Fatal("expected a logger")
		}
	})
}
