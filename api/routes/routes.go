package routes

import (
	"github.com/Ravij-p/sandhan-backend/internal/config"
	"github.com/Ravij-p/sandhan-backend/internal/handlers"
	"github.com/Ravij-p/sandhan-backend/internal/middleware"
	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the router wires up
type Handlers struct {
	Auth    *handlers.AuthHandler
	Catalog *handlers.CatalogHandler
	Payment *handlers.PaymentHandler
	Upi     *handlers.UpiPaymentHandler
	Content *handlers.ContentHandler
	Student *handlers.StudentHandler
	Ad      *handlers.AdHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/admin/login", h.Auth.AdminLogin)
			auth.POST("/forgot-password", h.Auth.ForgotPassword)
			auth.POST("/reset-password", h.Auth.ResetPassword)
		}

		public.GET("/courses", h.Catalog.ListCourses)
		public.GET("/courses/:id", h.Catalog.GetCourse)
		public.GET("/test-series", h.Catalog.ListTestSeries)
		public.GET("/test-series/:id", h.Catalog.GetTestSeries)
		public.GET("/ads", h.Ad.ListActive)

		// The buyer may not be registered yet, so initiation stays public
		public.POST("/upi-payments/initiate-public", h.Upi.InitiatePublic)
	}

	// Authenticated routes (students and admins)
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		students := protected.Group("/students")
		{
			students.GET("/me", h.Student.GetProfile)
			students.GET("/me/enrollments", h.Student.ListEnrollments)
		}

		payments := protected.Group("/payments")
		{
			payments.POST("/create-order", h.Payment.CreateOrder)
			payments.POST("/verify-payment", h.Payment.VerifyPayment)
		}
		protected.POST("/upi-payments/submit-utr", h.Upi.SubmitUTR)

		content := protected.Group("")
		{
			content.GET("/courses/:id/videos", h.Content.ListCourseVideos)
			content.GET("/courses/:id/videos/:videoId", h.Content.VideoPlaybackURL)
			content.GET("/documents/stream/:id", h.Content.DownloadDocument)
		}
	}

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", h.Student.DashboardStats)

		admin.GET("/students", h.Student.ListStudents)
		admin.PUT("/students/:id/deactivate", h.Student.DeactivateStudent)

		admin.POST("/courses", h.Catalog.CreateCourse)
		admin.PUT("/courses/:id", h.Catalog.UpdateCourse)
		admin.DELETE("/courses/:id", h.Catalog.DeleteCourse)

		admin.POST("/test-series", h.Catalog.CreateTestSeries)
		admin.PUT("/test-series/:id", h.Catalog.UpdateTestSeries)
		admin.DELETE("/test-series/:id", h.Catalog.DeleteTestSeries)

		admin.GET("/upi-payments", h.Upi.ListByStatus)
		admin.POST("/upi-payments/:id/approve", h.Upi.Approve)
		admin.POST("/upi-payments/:id/reject", h.Upi.Reject)

		admin.GET("/payments", h.Payment.ListLedger)

		admin.POST("/courses/:id/videos", h.Content.RegisterVideo)
		admin.POST("/courses/:id/documents", h.Content.RegisterDocument)

		admin.GET("/ads", h.Ad.ListAll)
		admin.POST("/ads", h.Ad.Create)
		admin.PUT("/ads/:id", h.Ad.Update)
		admin.DELETE("/ads/:id", h.Ad.Delete)
	}

	return router
}
