package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MemoryDSN selects the in-process backend instead of a SQLite file.
const MemoryDSN = "memory"

// Config captures environment driven configuration values for the escala service.
type Config struct {
	HTTPPort     int    `env:"ESCALA_HTTP_PORT" envDefault:"8080"`
	SQLiteDSN    string `env:"ESCALA_SQLITE_DSN" envDefault:"file:escala.db"`
	LogLevel     string `env:"ESCALA_LOG_LEVEL" envDefault:"info"`
	IDNode       int64  `env:"ESCALA_ID_NODE" envDefault:"1"`
	SeedDemoData bool   `env:"ESCALA_SEED_DEMO_DATA" envDefault:"true"`
}

// Load reads an optional .env file from the working directory and then
// parses configuration values from the process environment.
func Load() (Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv files. Missing files are skipped and
// variables already present in the environment are never overridden.
func LoadFiles(paths ...string) (Config, error) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("falha ao ler %s: %w", path, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("variáveis de ambiente inválidas: %w", err)
	}
	cfg.SQLiteDSN = strings.TrimSpace(cfg.SQLiteDSN)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	invalid := make([]string, 0, 3)
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		invalid = append(invalid, "ESCALA_HTTP_PORT")
	}
	if cfg.SQLiteDSN == "" {
		invalid = append(invalid, "ESCALA_SQLITE_DSN")
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		invalid = append(invalid, "ESCALA_LOG_LEVEL")
	}
	if cfg.IDNode < 0 || cfg.IDNode > 1023 {
		invalid = append(invalid, "ESCALA_ID_NODE")
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("variáveis de ambiente inválidas: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// UsesMemory reports whether the in-process backend was selected.
func (c Config) UsesMemory() bool {
	return c.SQLiteDSN == MemoryDSN
}

// Level returns the slog level named by LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	if level, ok := logLevels[c.LogLevel]; ok {
		return level
	}
	return slog.LevelInfo
}
