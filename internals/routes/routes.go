package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bu6wer8/student-services-V2/internals/auth"
	"github.com/bu6wer8/student-services-V2/internals/config"
	"github.com/bu6wer8/student-services-V2/internals/controllers"
	"github.com/bu6wer8/student-services-V2/internals/middleware"
)

func SetupRouter(cfg *config.Config, svc *auth.Service, db *gorm.DB) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.SweepSessions(svc))

	// Instantiate the "Class"
	authMiddleware := middleware.NewRequireAuthMiddleware(svc)
	authCtrl := controllers.NewAuthController(svc, cfg.Cookies())
	adminCtrl := controllers.NewAdminController(db)

	// Coarse request throttle on the unauthenticated auth endpoints
	loginLimiter := middleware.NewRequestLimiter(time.Second, 10)

	public := r.Group("/admin")
	public.Use(loginLimiter.Handle)
	{
		public.GET("/login", authCtrl.LoginPage)
		public.POST("/login", authCtrl.Login)
		public.GET("/captcha", authCtrl.GetCaptcha)
		public.POST("/logout", authCtrl.Logout)
	}

	protected := r.Group("/admin")
	protected.Use(authMiddleware.RequireAdmin)
	{
		protected.GET("", adminCtrl.Dashboard)
		protected.POST("/api/token", authCtrl.CreateToken)
	}

	api := r.Group("/admin/api")
	api.Use(authMiddleware.RequireAdminAPI)
	{
		api.GET("/orders", adminCtrl.ListOrders)
		api.GET("/orders/:id", adminCtrl.GetOrder)
		api.PUT("/orders/:id/status", adminCtrl.UpdateOrderStatus)
		api.GET("/customers", adminCtrl.ListCustomers)
		api.GET("/payments", adminCtrl.ListPayments)
		api.GET("/analytics", adminCtrl.Analytics)
	}

	return r
}
