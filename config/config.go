package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the application.
type Config struct {
	DatabaseURL        string
	ServerPort         int
	CORSAllowedOrigins []string

	// DisplayUTCOffsetMin is the fixed reference offset, in minutes east
	// of UTC, that every kickoff wall clock is interpreted and rendered
	// against. It never follows the server's local zone.
	DisplayUTCOffsetMin int
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present; its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	origins := []string{"*"}
	if originsStr := os.Getenv("CORS_ALLOWED_ORIGINS"); originsStr != "" {
		origins = origins[:0]
		for _, o := range strings.Split(originsStr, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	offsetStr := os.Getenv("DISPLAY_UTC_OFFSET_MIN")
	if offsetStr == "" {
		offsetStr = "0"
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_UTC_OFFSET_MIN environment variable: %w", err)
	}
	if offset < -14*60 || offset > 14*60 {
		return nil, fmt.Errorf("DISPLAY_UTC_OFFSET_MIN must be within +/-14 hours, got %d", offset)
	}

	cfg := &Config{
		DatabaseURL:         dbURL,
		ServerPort:          port,
		CORSAllowedOrigins:  origins,
		DisplayUTCOffsetMin: offset,
	}

	return cfg, nil
}
