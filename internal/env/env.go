package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/nantokaworks/card-roulette/internal/shared/logger"
)

type Env struct {
	ServerPort int
	DebugMode  bool
}

var Value Env

// LoadEnv reads .env (if present) and populates Value from the process
// environment. Call once at startup, before the web server starts.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded .env file")
	}

	Value = Env{
		ServerPort: envInt("SERVER_PORT", 8080),
		DebugMode:  envBool("DEBUG_MODE", false),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
