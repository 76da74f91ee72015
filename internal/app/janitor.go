package app

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/adanyl0v/go-planner/internal/services"
)

// startSessionJanitor purges expired sessions on the configured schedule.
// The returned cron must be stopped on shutdown.
func startSessionJanitor(schedule string, sessions services.SessionService) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		_, err := sessions.PurgeExpiredSessions(context.Background())
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("session janitor run failed")
		}
	})
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("schedule", schedule).
			Msg("failed to schedule session janitor")
		panic(err)
	}

	c.Start()
	globalLogger.Info().
		Str("schedule", schedule).
		Msg("started session janitor")
	return c
}
