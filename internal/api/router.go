package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/om1ji/appointment-booking-backend/internal/appointment"
	appointmentHttp "github.com/om1ji/appointment-booking-backend/internal/appointment/http"
	"github.com/om1ji/appointment-booking-backend/internal/auth"
	"github.com/om1ji/appointment-booking-backend/internal/category"
	categoryHttp "github.com/om1ji/appointment-booking-backend/internal/category/http"
	"github.com/om1ji/appointment-booking-backend/internal/client"
	clientHttp "github.com/om1ji/appointment-booking-backend/internal/client/http"
	"github.com/om1ji/appointment-booking-backend/internal/offering"
	offeringHttp "github.com/om1ji/appointment-booking-backend/internal/offering/http"
	"github.com/om1ji/appointment-booking-backend/internal/schedule"
	scheduleHttp "github.com/om1ji/appointment-booking-backend/internal/schedule/http"
	"github.com/om1ji/appointment-booking-backend/internal/specialist"
	specialistHttp "github.com/om1ji/appointment-booking-backend/internal/specialist/http"
	"github.com/om1ji/appointment-booking-backend/internal/user"
)

// RouterConfig bundles everything the router needs.
type RouterConfig struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       zerolog.Logger

	JWTManager *auth.JWTManager

	Users        user.Service
	Categories   category.Service
	Specialists  specialist.Service
	Schedules    schedule.Service
	Offerings    offering.Service
	Clients      client.Service
	Appointments appointment.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, logging, auth) and registers routes for the
// domain modules.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// authMiddleware: validates that the request carries a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// staffMiddleware: further checks that the authenticated user is staff.
	staffMiddleware := RequireStaff(cfg.Users)

	authHandler := NewAuthHandler(cfg.Users, cfg.JWTManager)
	categoryHandler := categoryHttp.NewHandler(cfg.Categories)
	scheduleHandler := scheduleHttp.NewHandler(cfg.Schedules)
	specialistHandler := specialistHttp.NewHandler(cfg.Specialists, cfg.Schedules, cfg.Offerings, cfg.Appointments)
	offeringHandler := offeringHttp.NewHandler(cfg.Offerings)
	clientHandler := clientHttp.NewHandler(cfg.Clients, cfg.Users)
	appointmentHandler := appointmentHttp.NewHandler(cfg.Appointments, cfg.Users, cfg.Clients, cfg.Specialists)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		categoryHttp.RegisterRoutes(v1, categoryHandler, authMiddleware, staffMiddleware)
		scheduleHttp.RegisterRoutes(v1, scheduleHandler, authMiddleware, staffMiddleware)
		specialistHttp.RegisterRoutes(v1, specialistHandler, authMiddleware, staffMiddleware)
		offeringHttp.RegisterRoutes(v1, offeringHandler, authMiddleware, staffMiddleware)
		clientHttp.RegisterRoutes(v1, clientHandler, authMiddleware, staffMiddleware)
		appointmentHttp.RegisterRoutes(v1, appointmentHandler, authMiddleware, staffMiddleware)
	}

	return r
}
