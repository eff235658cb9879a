package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the bot.
type Config struct {
	// DatabaseURL is a postgres DSN for the session store.
	DatabaseURL string
	// CommandPrefix is prepended to command names in user-facing hints,
	// e.g. "chess_" turns the rematch hint into "/chess_new".
	CommandPrefix string
	Debug         bool
}

// Load reads configuration from a .env file (when present) and the
// environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		CommandPrefix: os.Getenv("CHESSBOT_COMMAND_PREFIX"),
		Debug:         os.Getenv("CHESSBOT_DEBUG") == "1",
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "host=localhost user=chessbot dbname=chessbot sslmode=disable"
	}
	return cfg
}
