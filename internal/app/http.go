package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-planner/internal/config"
	"github.com/adanyl0v/go-planner/internal/delivery/http/v1"
	"github.com/adanyl0v/go-planner/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP
	sessionCfg := cfg.Session

	sessionService := services.NewSessionService(componentLogger("session_service"), globalStores.sessions)
	authService := services.NewAuthService(
		componentLogger("auth_service"),
		globalStores.users,
		globalStores.sessions,
		sessionService,
		sessionCfg.Issuer,
		[]byte(sessionCfg.SigningKey),
		sessionCfg.TTL,
	)
	taskService := services.NewTaskService(componentLogger("task_service"), globalStores.users, globalStores.tasks)
	v1Handler := v1.New(componentLogger("http"), authService, taskService, httpCfg.SecureCookies)

	janitor := startSessionJanitor(sessionCfg.CleanupSchedule, sessionService)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(v1Handler.HandleRequestLogger)
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(v1.Templates())
	v1.RegisterRoutes(router, v1Handler)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	<-janitor.Stop().Done()
	globalLogger.Info().Msg("stopped session janitor")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}
