package app

import (
	"pilates_diario_backend/docs"
	"pilates_diario_backend/internal/config"
	"pilates_diario_backend/internal/middleware"
	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerMemberRoutes(router, c, repos, cfg)
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/products", c.product.Feed)
	}
}

func (a *App) registerMemberRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	member := router.Group("/api")
	member.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		member.GET("/me", c.auth.GetProfile)
		member.PUT("/profile", c.user.UpdateProfile)
		member.POST("/profile/avatar", c.user.UploadAvatar)
		member.GET("/profile/stats", c.user.Stats)

		workout := member.Group("/workout")
		{
			workout.GET("/today", c.workout.Today)
			workout.POST("/start", c.workout.Start)
			workout.GET("/status", c.workout.Status)
			workout.POST("/abandon", c.workout.Abandon)
			workout.POST("/complete", c.workout.Complete)
		}

		member.GET("/ranking", c.ranking.Top)
		member.GET("/ranking/me", c.ranking.Me)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/verify-code", c.auth.VerifyAdminCode)

		admin.GET("/exercises", c.exercise.List)
		admin.POST("/exercises", c.exercise.Create)
		admin.POST("/exercises/upload", c.exercise.Upload)
		admin.PUT("/exercises/:id", c.exercise.Update)
		admin.PATCH("/exercises/:id/active", c.exercise.SetActive)

		admin.GET("/products", c.product.List)
		admin.POST("/products", c.product.Create)
		admin.PUT("/products/:id", c.product.Update)
		admin.DELETE("/products/:id", c.product.Delete)
	}
}
