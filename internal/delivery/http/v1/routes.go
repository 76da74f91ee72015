package v1

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the pages and the task API.
//
// CSRF: no tokens are issued. The session cookie is SameSite=Lax, so
// browsers don't attach it to cross-site POST, PUT or DELETE requests,
// and the task endpoints don't depend on a session.
func RegisterRoutes(router *gin.Engine, h Handler) {
	router.NoRoute(h.HandleNoRoute)
	router.NoMethod(h.HandleNoMethod)

	router.Use(h.HandleSessionMiddleware)

	router.GET("/", h.HandleIndex)

	router.GET("/signup/", h.HandleSignupPage)
	router.POST("/signup/", h.HandleSignup)
	router.GET("/login/", h.HandleLoginPage)
	router.POST("/login/", h.HandleLogin)
	router.GET("/logout/", h.HandleLogout)
	router.POST("/logout/", h.HandleLogout)

	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("/", h.HandleListTasks)
	tasksRouter.POST("/", h.HandleCreateTask)
	tasksRouter.GET("/:id/", h.HandleGetTask)
	tasksRouter.PUT("/:id/", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id/", h.HandleDeleteTask)
}
