package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"taskly-be/internal/config"
	"taskly-be/internal/controllers"
	"taskly-be/internal/jwt"
	"taskly-be/internal/middleware"
	"taskly-be/internal/service"
)

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	Config      *config.Config
	JWTService  *jwt.JWTService
	AuthService service.AuthService
	TaskService service.TaskService
}

// Router is the configured gin engine plus the limiters whose cleanup
// goroutines must be stopped on shutdown.
type Router struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close stops background work started by the router
func (r *Router) Close() {
	for _, l := range r.limiters {
		l.Stop()
	}
}

// NewRouter wires controllers, middleware and routes
func NewRouter(deps Dependencies) *Router {
	cfg := deps.Config

	authController := controllers.NewAuthController(deps.AuthService)
	taskController := controllers.NewTaskController(deps.TaskService)
	qrcodeController := controllers.NewQRCodeController(deps.TaskService, cfg.FrontendURL)

	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Unhandled panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}))
	engine.Use(middleware.CORS(cfg.ClientOrigin))

	// Health check endpoint (no rate limiting)
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authController.Logout)
		}

		// Protected routes - require JWT authentication
		tasks := api.Group("/tasks")
		tasks.Use(middleware.AuthMiddleware(deps.JWTService))
		{
			tasks.POST("", taskController.CreateTask)
			tasks.GET("", taskController.GetTasks)
			tasks.GET("/:id", taskController.GetTask)
			tasks.PUT("/:id", taskController.UpdateTask)
			tasks.DELETE("/:id", taskController.DeleteTask)
			tasks.GET("/:id/qrcode", qrcodeController.GenerateTaskQRCode)
		}
	}

	return &Router{
		Engine:   engine,
		limiters: []*middleware.RateLimiter{generalRateLimiter, authRateLimiter},
	}
}
