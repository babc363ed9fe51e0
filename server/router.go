package server

import (
	"course-studio/pkg/auth"
	"course-studio/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"time"
)

type Dependencies struct {
	Courses     service.CourseService
	Chapters    service.ChapterService
	Attachments service.AttachmentService
	Uploads     service.UploadService
	Tokens      *auth.TokenManager
	Limiter     *RateLimiter
	Logger      zerolog.Logger

	AllowedOrigins   []string
	MaxUploadBytes   int64
	UploadsPerMinute int
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(deps.Logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = deps.AllowedOrigins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestIdHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	addHealth(r)

	h := &handlers{deps: deps}
	api := r.Group("/api")
	api.Use(authRequired(deps.Tokens))
	{
		api.GET("/categories", h.listCategories)
		api.GET("/search", h.searchCourses)
		api.POST("/upload", deps.Limiter.Limit("upload", deps.UploadsPerMinute, time.Minute), h.upload)

		courses := api.Group("/courses")
		courses.POST("", h.createCourse)
		courses.GET("", h.listCourses)
		courses.GET("/:id", h.getCourse)
		courses.PATCH("/:id", h.updateCourse)
		courses.DELETE("/:id", h.deleteCourse)
		courses.PATCH("/:id/publish", h.publishCourse)
		courses.PATCH("/:id/unpublish", h.unpublishCourse)

		courses.POST("/:id/attachments", h.createAttachment)
		courses.DELETE("/:id/attachments/:attachmentId", h.deleteAttachment)

		courses.POST("/:id/chapters", h.createChapter)
		courses.PUT("/:id/chapters/reorder", h.reorderChapters)
		courses.GET("/:id/chapters/:chapterId", h.getChapter)
		courses.PUT("/:id/chapters/:chapterId", h.renameChapter)
		courses.PATCH("/:id/chapters/:chapterId", h.updateChapter)
		courses.DELETE("/:id/chapters/:chapterId", h.deleteChapter)
		courses.PATCH("/:id/chapters/:chapterId/publish", h.publishChapter)
		courses.PATCH("/:id/chapters/:chapterId/unpublish", h.unpublishChapter)
	}

	return r
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}
