package app

import (
	"github.com/adanyl0v/go-planner/internal/config"
	"github.com/adanyl0v/go-planner/internal/models"
	"github.com/adanyl0v/go-planner/internal/storage/postgres"
	"github.com/adanyl0v/go-planner/internal/storage/sqlite"
)

type stores struct {
	users    models.UserStore
	sessions models.SessionStore
	tasks    models.TaskStore
	close    func()
}

var globalStores stores

// MustOpenStorage connects the backend selected by STORAGE_DRIVER.
func MustOpenStorage() {
	cfg := config.Global()

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pool := mustConnectPostgres()
		globalStores = stores{
			users:    postgres.NewUserStore(pool),
			sessions: postgres.NewSessionStore(pool),
			tasks:    postgres.NewTaskStore(pool),
			close:    pool.Close,
		}
	case config.StorageDriverSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path, componentLogger("sqlite"))
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("path", cfg.SQLite.Path).
				Msg("failed to open sqlite")
			panic(err)
		}
		globalLogger.Info().
			Str("path", cfg.SQLite.Path).
			Msg("opened sqlite")

		globalStores = stores{
			users:    sqlite.NewUserStore(db),
			sessions: sqlite.NewSessionStore(db),
			tasks:    sqlite.NewTaskStore(db),
			close: func() {
				err := sqlite.Close(db)
				if err != nil {
					globalLogger.Error().
						Err(err).
						Msg("failed to close sqlite")
				}
			},
		}
	}
}

func CloseStorage() {
	if globalStores.close == nil {
		return
	}
	globalStores.close()
	globalLogger.Info().
		Str("driver", config.Global().Storage.Driver).
		Msg("closed storage")
}
