package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shareloop/item-loan-backend/internal/booking"
	bookingHttp "github.com/shareloop/item-loan-backend/internal/booking/http"
	"github.com/shareloop/item-loan-backend/internal/identity"
	"github.com/shareloop/item-loan-backend/internal/item"
	itemHttp "github.com/shareloop/item-loan-backend/internal/item/http"
	"github.com/shareloop/item-loan-backend/internal/user"
	userHttp "github.com/shareloop/item-loan-backend/internal/user/http"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
}

// NewRouter initializes the HTTP router engine. It assembles middleware
// (CORS, Logger, identity) and registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global middleware:
	// - Logger: logs request information to the console.
	// - Recovery: captures panics and returns a 500 instead of crashing.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = []string{cfg.ProdOrigins}
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.HeaderUserID}
	r.Use(cors.New(corsConfig))

	// identityMiddleware: extracts the already-authenticated caller id
	// forwarded by the gateway.
	identityMiddleware := identity.Required()

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler)
		itemHttp.RegisterRoutes(v1, itemHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, identityMiddleware)
	}

	return r
}
