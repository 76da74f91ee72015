package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-planner/internal/services"
)

type Handler interface {
	HandleIndex(c *gin.Context)
	HandleSignupPage(c *gin.Context)
	HandleSignup(c *gin.Context)
	HandleLoginPage(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleLogout(c *gin.Context)

	HandleRequestLogger(c *gin.Context)
	HandleSessionMiddleware(c *gin.Context)
	HandleNoRoute(c *gin.Context)
	HandleNoMethod(c *gin.Context)

	HandleListTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger        zerolog.Logger
	auth          services.AuthService
	tasks         services.TaskService
	secureCookies bool
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	taskService services.TaskService,
	secureCookies bool,
) Handler {
	return &handlerImpl{
		logger:        logger,
		auth:          authService,
		tasks:         taskService,
		secureCookies: secureCookies,
	}
}
