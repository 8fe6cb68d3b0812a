package server

import (
	"context"
	"net/http"

	"github.com/Metafyzik/tennis-club/internal/auth"
	"github.com/Metafyzik/tennis-club/internal/config"
	"github.com/Metafyzik/tennis-club/internal/court"
	"github.com/Metafyzik/tennis-club/internal/reservation"
	"github.com/Metafyzik/tennis-club/internal/surface"
	"github.com/Metafyzik/tennis-club/internal/user"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User        *user.Handler
	Surface     *surface.Handler
	Court       *court.Handler
	Reservation *reservation.Handler
}

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

func New(cfg *config.Config, h Handlers) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	public := router.Group("/auth")
	{
		public.POST("/register", h.User.Register)
		public.POST("/login", h.User.Login)
		public.POST("/refresh", h.User.Refresh)
		public.POST("/logout", h.User.Logout)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/api")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", h.User.GetMe)

		protected.GET("/surfaces", h.Surface.List)
		protected.GET("/surfaces/:surfaceID", h.Surface.Get)

		protected.GET("/courts", h.Court.List)
		protected.GET("/courts/:courtID", h.Court.Get)
		protected.GET("/courts/:courtID/reservations", h.Reservation.ListByCourt)

		protected.POST("/reservations", h.Reservation.Create)
		protected.GET("/reservations", h.Reservation.List)
		protected.GET("/reservations/mine", h.Reservation.ListMine)
		protected.GET("/reservations/:reservationID", h.Reservation.Get)
		protected.PUT("/reservations/:reservationID", h.Reservation.Update)
		protected.DELETE("/reservations/:reservationID", h.Reservation.Delete)
	}

	admin := router.Group("/api/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/surfaces", h.Surface.Create)
		admin.PUT("/surfaces/:surfaceID", h.Surface.Update)
		admin.DELETE("/surfaces/:surfaceID", h.Surface.Delete)

		admin.POST("/courts", h.Court.Create)
		admin.PUT("/courts/:courtID", h.Court.Update)
		admin.DELETE("/courts/:courtID", h.Court.Delete)

		admin.GET("/reservations/by-phone/:phoneNumber", h.Reservation.ListByPhone)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
