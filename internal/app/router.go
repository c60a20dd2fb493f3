package app

import (
	"corpready_backend/docs"
	"corpready_backend/internal/config"
	"corpready_backend/internal/middleware"
	"corpready_backend/internal/model"
	"corpready_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.POST("/auth/register", c.auth.Register)
		public.GET("/auth/verify-email", c.auth.VerifyEmail)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/refresh", c.auth.Refresh)
		public.POST("/auth/forgot-password", c.auth.ForgotPassword)
		public.POST("/auth/reset-password", c.auth.ResetPassword)

		// 证书验证不要求登录，供雇主核验
		public.GET("/certificates/verify/:code", c.cert.Verify)
	}

	// 课程目录对游客开放，登录用户顺带刷新活跃时间
	browse := router.Group("/api")
	browse.Use(middleware.TryAuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		browse.GET("/domains", c.course.ListDomains)
		browse.GET("/domains/:id/topics", c.course.ListTopics)
		browse.GET("/courses", c.course.ListCourses)
		browse.GET("/courses/:id", c.course.GetCourse)

		browse.GET("/internships", c.internship.List)
		browse.GET("/mentors", c.mentorship.ListMentors)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.POST("/auth/logout", c.auth.Logout)
		authGroup.GET("/auth/me", c.auth.Me)

		authGroup.GET("/users/profile", c.user.GetProfile)
		authGroup.PUT("/users/profile", c.user.UpdateProfile)
		authGroup.POST("/users/avatar", c.user.UploadAvatar)

		authGroup.POST("/courses/generate", c.course.Generate)
		authGroup.GET("/videos/search", c.course.SearchVideos)

		authGroup.POST("/courses/:id/enroll", c.progress.Enroll)
		authGroup.GET("/courses/:id/progress", c.progress.GetCourseProgress)
		authGroup.POST("/progress/video", c.progress.UpdateVideoProgress)
		authGroup.GET("/progress/courses", c.progress.ListEnrollments)

		authGroup.GET("/courses/:id/quiz", c.quiz.GetCourseQuiz)
		authGroup.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)
		authGroup.GET("/quizzes/:id/attempts", c.quiz.ListAttempts)

		authGroup.GET("/certificates", c.cert.ListMine)
		authGroup.GET("/certificates/:id/download", c.cert.Download)

		authGroup.GET("/internships/saved", c.internship.ListSaved)
		authGroup.GET("/internships/applications", c.internship.ListApplications)
		authGroup.GET("/internships/:id", c.internship.Get)
		authGroup.POST("/internships/:id/save", c.internship.Save)
		authGroup.DELETE("/internships/:id/save", c.internship.Unsave)
		authGroup.POST("/internships/:id/apply", c.internship.Apply)

		authGroup.GET("/mentorship/sessions", c.mentorship.ListSessions)
		authGroup.POST("/mentorship/sessions", c.mentorship.BookSession)
		authGroup.POST("/mentorship/sessions/:id/cancel", c.mentorship.CancelSession)
	}

	// 3. 管理端路由，用户管理对 ops 开放，审计日志仅 admin 可查
	opsGroup := router.Group("/api/admin")
	opsGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Ops))
	{
		opsGroup.GET("/users", c.admin.ListUsers)
		opsGroup.GET("/users/:id", c.admin.GetUser)
		opsGroup.POST("/users/:id/reset-password", c.admin.ResetUserPassword)
		opsGroup.POST("/users/:id/deactivate", c.admin.DeactivateUser)
		opsGroup.POST("/users/:id/reactivate", c.admin.ReactivateUser)
	}

	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		// 角色调整仅 admin 可做，避免运营自提权限
		adminGroup.PUT("/users/:id/role", c.admin.ChangeRole)
		adminGroup.GET("/logs", c.admin.ListActionLogs)
	}

	// 内容维护路由，curator 可操作课程，partner 可操作实习岗位，admin 全部放行
	curateGroup := router.Group("/api/admin")
	curateGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Curator))
	{
		curateGroup.PUT("/courses/:id", c.course.UpdateCourse)
		curateGroup.DELETE("/courses/:id", c.course.DeleteCourse)
	}

	partnerGroup := router.Group("/api/admin")
	partnerGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Partner))
	{
		partnerGroup.POST("/internships", c.internship.Create)
		partnerGroup.PUT("/internships/:id", c.internship.Update)
		partnerGroup.DELETE("/internships/:id", c.internship.Delete)
	}
}
