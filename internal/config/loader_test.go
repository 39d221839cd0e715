package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var escalaVars = []string{
	"ESCALA_HTTP_PORT",
	"ESCALA_SQLITE_DSN",
	"ESCALA_LOG_LEVEL",
	"ESCALA_ID_NODE",
	"ESCALA_SEED_DEMO_DATA",
}

// clearEnv unsets every variable read by the loader and restores them when
// the test finishes.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range escalaVars {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearEnv(t)

		cfg, err := LoadFiles()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:escala.db" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.Level() != slog.LevelInfo || cfg.IDNode != 1 || !cfg.SeedDemoData {
			t.Fatalf("unexpected defaults: %+v", cfg)
		}
		if cfg.UsesMemory() {
			t.Fatalf("expected sqlite backend by default")
		}
	})

	t.Run("parses explicit values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ESCALA_HTTP_PORT", "9090")
		t.Setenv("ESCALA_SQLITE_DSN", "memory")
		t.Setenv("ESCALA_LOG_LEVEL", "DEBUG")
		t.Setenv("ESCALA_ID_NODE", "7")
		t.Setenv("ESCALA_SEED_DEMO_DATA", "false")

		cfg, err := LoadFiles()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 || cfg.IDNode != 7 || cfg.SeedDemoData {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if !cfg.UsesMemory() {
			t.Fatalf("expected memory backend")
		}
		if cfg.Level() != slog.LevelDebug {
			t.Fatalf("expected debug level, got %s", cfg.Level())
		}
	})

	t.Run("reports invalid values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ESCALA_HTTP_PORT", "0")
		t.Setenv("ESCALA_LOG_LEVEL", "verbose")
		t.Setenv("ESCALA_ID_NODE", "2048")

		_, err := LoadFiles()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "variáveis de ambiente inválidas: ESCALA_HTTP_PORT, ESCALA_LOG_LEVEL, ESCALA_ID_NODE"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("rejects values that do not parse", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ESCALA_HTTP_PORT", "eighty")

		_, err := LoadFiles()
		if err == nil || !strings.HasPrefix(err.Error(), "variáveis de ambiente inválidas") {
			t.Fatalf("expected parse error, got %v", err)
		}
	})

	t.Run("reads dotenv files without overriding the environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ESCALA_HTTP_PORT", "7000")

		path := filepath.Join(t.TempDir(), ".env")
		content := "ESCALA_HTTP_PORT=6000\nESCALA_LOG_LEVEL=warn\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write dotenv file: %v", err)
		}
		t.Cleanup(func() { _ = os.Unsetenv("ESCALA_LOG_LEVEL") })

		cfg, err := LoadFiles(path, filepath.Join(t.TempDir(), "missing.env"))
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPPort != 7000 {
			t.Fatalf("expected environment to win over dotenv, got %d", cfg.HTTPPort)
		}
		if cfg.Level() != slog.LevelWarn {
			t.Fatalf("expected level from dotenv, got %s", cfg.Level())
		}
	})
}
