package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/om1ji/appointment-booking-backend/internal/api"
	"github.com/om1ji/appointment-booking-backend/internal/appointment"
	"github.com/om1ji/appointment-booking-backend/internal/auth"
	"github.com/om1ji/appointment-booking-backend/internal/category"
	"github.com/om1ji/appointment-booking-backend/internal/client"
	"github.com/om1ji/appointment-booking-backend/internal/offering"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/storage"
	"github.com/om1ji/appointment-booking-backend/internal/schedule"
	"github.com/om1ji/appointment-booking-backend/internal/specialist"
	"github.com/om1ji/appointment-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	MediaStore   storage.Storage
	Logger       zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Category module
	categoryRepo := category.NewPgxRepository(cfg.DBPool)
	categoryService := category.NewService(categoryRepo)

	// Specialist module
	specialistRepo := specialist.NewPgxRepository(cfg.DBPool)
	specialistService := specialist.NewService(specialistRepo, cfg.MediaStore)

	// Schedule module
	scheduleRepo := schedule.NewPgxRepository(cfg.DBPool)
	scheduleService := schedule.NewService(scheduleRepo)

	// Offering module
	offeringRepo := offering.NewPgxRepository(cfg.DBPool)
	offeringService := offering.NewService(offeringRepo, specialistService, categoryService)

	// Client module
	clientRepo := client.NewPgxRepository(cfg.DBPool)
	clientService := client.NewService(clientRepo)

	// Appointment module
	appointmentRepo := appointment.NewPgxRepository(cfg.DBPool)
	appointmentService := appointment.NewService(
		appointmentRepo, clientService, specialistService, offeringService, scheduleService,
	)

	// Router
	router := api.NewRouter(api.RouterConfig{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		Logger:       cfg.Logger,
		JWTManager:   jwtManager,
		Users:        userService,
		Categories:   categoryService,
		Specialists:  specialistService,
		Schedules:    scheduleService,
		Offerings:    offeringService,
		Clients:      clientService,
		Appointments: appointmentService,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
