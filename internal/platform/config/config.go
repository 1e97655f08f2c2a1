package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the service settings read from the environment.
type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string
	FrameRate   int    // rate of every timeline and offset the service accepts
	TimelineDir string // optional directory of JSON bin exports loaded at startup
	PresetsFile string // optional TOML marker preset catalog
	LoadWorkers int
}

// Load reads the .env file from the current working directory and sets
// environment variables. If .env does not exist, Load returns an error but
// callers can ignore it and use system env or defaults. Pass one or more paths
// to load from specific files; with no paths, ".env" is used.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// FromEnv builds a Config from the environment, applying defaults.
func FromEnv() Config {
	return Config{
		Port:        GetEnv("PORT", "8080"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		LogFormat:   GetEnv("LOG_FORMAT", "json"),
		FrameRate:   GetEnvInt("TRT_FRAME_RATE", 24),
		TimelineDir: GetEnv("TIMELINE_DIR", ""),
		PresetsFile: GetEnv("PRESETS_FILE", ""),
		LoadWorkers: GetEnvInt("LOAD_WORKERS", 4),
	}
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by key,
// or fallback if the variable is unset, empty, not a valid integer, or not
// positive.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
