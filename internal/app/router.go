package app

import (
	"athena_backend/internal/config"
	"athena_backend/internal/middleware"
	"athena_backend/internal/model"
	"athena_backend/pkg/monitoring"
	"net/http"

	"athena_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"

	// 公共路由
	router.GET("/api/health", c.health.HealthCheck)
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	// 需要认证的路由
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	api.Use(middleware.ActivityMiddleware(repos.user))
	{
		// 个人资料
		api.GET("/profile", c.user.GetProfile)
		api.PUT("/profile", c.user.UpdateProfile)
		api.POST("/profile/avatar", c.user.UploadAvatar)

		// 行动能力目录
		api.GET("/competences", c.catalog.ListCompetences)
		api.GET("/competences/:id/chart", c.progress.CompetenceChart)
		api.GET("/progress", c.progress.Chart)
		api.POST("/learn-aims/:id/todo", c.catalog.ToggleTodo)

		// 学习目标检查
		api.POST("/checks", c.check.SubmitCheck)
		api.PUT("/checks/:id", c.check.ReviseCheck)
		api.DELETE("/checks/:id", c.check.WithdrawCheck)
		api.DELETE("/checks/:id/decline", c.check.DeclineCheck)

		// 教练专属路由
		coach := api.Group("")
		coach.Use(middleware.RoleMiddleware(model.Coach))
		{
			coach.PATCH("/checks/:id/approve", c.check.ApproveCheck)
			coach.GET("/trainees", c.user.GetTrainees)
			coach.GET("/trainees/:id/checks", c.check.ChecksForTrainee)
		}
	}

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "route not found"})
	})
}
