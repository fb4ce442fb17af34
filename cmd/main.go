// Package main is the entry point for the basket-service application.
//
// @title           Basket Optimizer API
// @version         1.0.0
// @description     API for finding the cheapest way to fulfill a basket of pharmacy products.
//
//	This service joins product offers from multiple pharmacies with their shipping
//	policies and searches for the cheapest single- and multi-order fulfillments.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/pharmabot/basket-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Optimize
// @tag.description Basket optimization operations
//
// @tag.name        Basket
// @tag.description Stored basket management
//
// @tag.name        Catalog
// @tag.description Product, pharmacy, and offer management
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/pharmabot/basket-service/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/pharmabot/basket-service/config"
	"github.com/pharmabot/basket-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional, environment variables win
	_ = godotenv.Load()

	cfg := config.Load()

	router, cleanup := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)
	server.OnShutdown(cleanup)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
