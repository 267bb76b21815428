package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/progressclasses/classes-backend/internal/config"
	"github.com/progressclasses/classes-backend/internal/handler"
	"github.com/progressclasses/classes-backend/internal/middleware"
	"github.com/progressclasses/classes-backend/internal/response"
	"github.com/progressclasses/classes-backend/internal/service"
	"github.com/progressclasses/classes-backend/internal/validator"
	"github.com/rs/zerolog"
)

// Banner is the plain-text body served at the root path.
const Banner = "Progress Classes Backend Running"

// staticMaxAge is how long browsers may cache files under /public.
const staticMaxAge = 24 * 60 * 60

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Course  *handler.CourseHandler
	Faculty *handler.FacultyHandler
	Enquiry *handler.EnquiryHandler
}

// Limiters holds the per-route rate limiters. A nil limiter leaves the route unthrottled.
type Limiters struct {
	Login   *middleware.RateLimiter
	Enquiry *middleware.RateLimiter
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	limiters Limiters,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	validator.Setup()

	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// Restrict to ALLOWED_ORIGINS when set, otherwise allow all.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli(middleware.DefaultBrotliMinLength))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Banner)
	})

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Static assets (images for course pages, etc.).
	if cfg.StaticDir != "" {
		static := router.Group("/public")
		static.Use(middleware.CacheControl(middleware.PublicMaxAge(staticMaxAge)))
		{
			static.Static("/", cfg.StaticDir)
		}
	}

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	router.GET("/course", handlers.Course.ListPublic)
	router.GET("/faculty", handlers.Faculty.ListPublic)
	router.GET("/enquiry", handlers.Enquiry.ListPublic)
	router.POST("/enquiry", limit(limiters.Enquiry), handlers.Enquiry.Create)

	// ─── 2. Admin Login (Public, Rate Limited) ─────────────────────────
	router.POST("/admin/login", limit(limiters.Login), middleware.CacheControl(middleware.NoStore), handlers.Auth.AdminLogin)

	// ─── 3. Admin Group (JWT) ──────────────────────────────────────────
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdminJWT(authService), middleware.CacheControl(middleware.NoStore))
	{
		admin.PATCH("/password", handlers.Auth.ChangePassword)

		// Courses
		admin.GET("/course", handlers.Course.ListAdmin)
		admin.GET("/course/:id", handlers.Course.Get)
		admin.POST("/course", handlers.Course.Create)
		admin.PATCH("/course/:id", handlers.Course.Update)
		admin.DELETE("/course/:id", handlers.Course.Delete)

		// Faculty
		admin.GET("/faculty", handlers.Faculty.ListAdmin)
		admin.GET("/faculty/:id", handlers.Faculty.Get)
		admin.POST("/faculty", handlers.Faculty.Create)
		admin.PATCH("/faculty/:id", handlers.Faculty.Update)
		admin.DELETE("/faculty/:id", handlers.Faculty.Delete)

		// Faculty-course assignments
		admin.POST("/faculty_course", handlers.Faculty.AssignCourse)
		admin.DELETE("/faculty/:id/courses/:courseId", handlers.Faculty.UnassignCourse)

		// Enquiries
		admin.GET("/enquiry", handlers.Enquiry.ListAdmin)
		admin.GET("/enquiry/:id", handlers.Enquiry.Get)
		admin.PATCH("/enquiry/:id", handlers.Enquiry.Update)
		admin.DELETE("/enquiry/:id", handlers.Enquiry.Delete)
	}

	return router
}

func limit(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.Middleware()
}
