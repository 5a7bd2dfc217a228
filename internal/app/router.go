package app

import (
	"lingua_school_backend/docs"
	"lingua_school_backend/internal/config"
	"lingua_school_backend/internal/middleware"
	"lingua_school_backend/internal/model"
	"lingua_school_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.Use(middleware.RequestID())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/lessons/:lessonId/blocks", c.lesson.ListBlocks)
	rg.GET("/lessons/:lessonId/results", c.exercise.GetLessonResults)
	rg.POST("/exercises/blocks/:blockId/submit", c.exercise.SubmitAnswer)

	rg.GET("/homework", c.homework.ListMine)
	rg.POST("/homework/:assignmentId/submit", c.homework.Submit)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/lessons/:lessonId/results", c.exercise.GetLessonResultsForAllStudents)
		teacher.GET("/lessons/:lessonId/students/:studentId", c.exercise.GetStudentLessonDetail)

		teacher.POST("/lessons/:lessonId/blocks", c.lesson.CreateBlock)
		teacher.POST("/lessons/:lessonId/blocks/reorder", c.lesson.ReorderBlocks)
		teacher.PUT("/blocks/:id", c.lesson.UpdateBlock)
		teacher.DELETE("/blocks/:id", c.lesson.DeleteBlock)

		teacher.POST("/homework/assign", c.homework.Assign)
		teacher.POST("/homework/:assignmentId/accept", c.homework.Accept)
		teacher.GET("/homework/lessons/:lessonId", c.homework.ListForLesson)
	}
}
