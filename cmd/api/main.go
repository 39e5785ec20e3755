package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/axelignis/adventure/internal/alerts"
	"github.com/axelignis/adventure/internal/analytics"
	"github.com/axelignis/adventure/internal/booking"
	"github.com/axelignis/adventure/internal/catalog"
	"github.com/axelignis/adventure/internal/db"
	appmw "github.com/axelignis/adventure/internal/middleware"
	"github.com/axelignis/adventure/internal/pricing"
	"github.com/axelignis/adventure/internal/search"
)

func main() {
	_ = godotenv.Load()

	// Init subsystems
	db.Init()
	analytics.Init()
	alerts.Init()
	defer analytics.Close()
	defer alerts.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Health
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(context.Background()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Discovery
	e.GET("/search", search.Search)
	e.GET("/search/filters", catalog.GetFilterOptions)
	e.GET("/search/price-range", catalog.GetPriceRange)
	e.GET("/services/:slug", catalog.GetServiceBySlug)
	e.GET("/services/:slug/related", catalog.GetRelatedServices)

	// Checkout
	e.POST("/pricing/quote", pricing.Quote)
	e.POST("/bookings", booking.Create, appmw.OptionalAuth)

	// Authenticated
	g := e.Group("")
	g.Use(appmw.Auth)
	g.GET("/bookings", booking.ListMine)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("API server listening on :%s", port)
	if err := e.Start(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
