package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/staffline-dev/staffline/internal/handlers"
	"github.com/staffline-dev/staffline/internal/middleware"
	"github.com/staffline-dev/staffline/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterUser)
			auth.POST("/login", handlers.LoginUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.GET("/users", middleware.AuthMiddleware(), middleware.RequireManager(), handlers.ListUsers)
			auth.GET("/active-users", middleware.AuthMiddleware(), handlers.ListActiveUsers)
			auth.GET("/users/:id", middleware.AuthMiddleware(), handlers.GetUser)
		}

		clients := api.Group("/clients", middleware.AuthMiddleware())
		{
			clients.GET("", handlers.ListClients)
			clients.GET("/:id", handlers.GetClient)
			clients.POST("", handlers.CreateClient)
			clients.PUT("/:id", handlers.UpdateClient)
			clients.DELETE("/:id", middleware.RequireManager(), handlers.DeleteClient)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.ListProjects)
			projects.GET("/:id", handlers.GetProject)
			projects.POST("", handlers.CreateProject)
			projects.PUT("/:id", handlers.UpdateProject)
			projects.PUT("/:id/progress", handlers.UpdateProjectProgress)
			projects.POST("/:id/team-members", handlers.AddTeamMember)
			projects.POST("/:id/modules", handlers.AddModule)
			projects.DELETE("/:id", middleware.RequireManager(), handlers.DeleteProject)
		}
	}

	return r
}
