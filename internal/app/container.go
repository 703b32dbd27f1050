package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shareloop/item-loan-backend/internal/api"
	"github.com/shareloop/item-loan-backend/internal/booking"
	"github.com/shareloop/item-loan-backend/internal/item"
	"github.com/shareloop/item-loan-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Item module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userService)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, userService, itemService)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
	})

	return &Container{
		Router:         router,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
	}
}
