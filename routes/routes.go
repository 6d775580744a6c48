package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vnkhanh/survey-insights/config"
	"github.com/vnkhanh/survey-insights/controllers"
	"github.com/vnkhanh/survey-insights/middleware"
)

func SetupRoutes(r *gin.Engine, cfg config.ServerConfig) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		runs := api.Group("/runs")
		runs.Use(middleware.AuthJWT(cfg.JWTSecret))
		{
			runs.POST("", middleware.RateLimitRunsCreate(cfg.RateLimitPerMin, cfg.RateLimitBurst), controllers.CreateRun)
			runs.GET("", controllers.ListRuns)
			runs.GET("/:job_id", middleware.CheckRunOwner(), controllers.GetRun)
			runs.GET("/:job_id/nps", middleware.CheckRunOwner(), controllers.GetRunNPS)
			runs.GET("/:job_id/responses", middleware.CheckRunOwner(), controllers.ListRunResponses)
			runs.GET("/:job_id/artifacts", middleware.CheckRunOwner(), controllers.ListArtifacts)
			runs.GET("/:job_id/artifacts/:name", middleware.CheckRunOwner(), controllers.DownloadArtifact)
			runs.POST("/:job_id/share", middleware.CheckRunOwner(), controllers.ShareRun)
		}
		// Read-only access with a share token, no login.
		api.GET("/shared/:job_id/artifacts/:name", middleware.CheckRunReader(), controllers.DownloadArtifact)
	}
}
