package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-planner/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("storage_driver", cfg.Storage.Driver).
		Str("http_port", cfg.HTTP.Port).
		Dur("session_ttl", cfg.Session.TTL).
		Str("session_cleanup_schedule", cfg.Session.CleanupSchedule).
		Msg("read env")

	config.SetGlobal(cfg)
}
