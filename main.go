package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-dashboard/dashboard"
	"weather-dashboard/datasource"
	"weather-dashboard/models"
	"weather-dashboard/web"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the dashboard on")
	refreshInterval := flag.Duration("refresh", dashboard.DefaultInterval, "Dashboard refresh interval")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	flag.Parse()

	// Load configuration, falling back to defaults when no file exists
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		log.Printf("No configuration file at %s, using defaults", *configFile)
		config = datasource.DefaultConfig()
	}
	config.ApplyEnv()

	// The API key is the one required setting; refuse to start without it
	if config.OpenWeatherMap.APIKey == "" {
		log.Fatal("No OpenWeatherMap API key configured. Set OPENWEATHER_API_KEY or add it to the config file.")
	}

	// Create the weather provider
	var provider datasource.WeatherProvider = datasource.NewOpenWeatherMapProvider(config.OpenWeatherMap.APIKey)

	if *enableRateLimiting {
		// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
		// Allow bursts of up to 5 requests (two cities, two endpoints, plus a kick)
		provider = datasource.NewRateLimitedProvider(provider, 1.0, 5)
		log.Println("Applied rate limiting to OpenWeatherMap provider")
	}

	// Create the snapshot store and refresh driver
	store := dashboard.NewStore(dashboard.Controls{
		Primary: config.DefaultCity,
		Units:   models.Metric,
	})
	refresher := dashboard.NewRefresher(provider, store, *refreshInterval)

	// Create the dashboard server
	server := web.NewServer(store, refresher, config.SavedCities, *port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the refresh driver in a goroutine
	go refresher.Run(ctx)

	// Start the dashboard server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Wait for shutdown signal
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownChan
	fmt.Printf("Shutting down due to %s signal\n", sig)

	// Stop the refresh driver and drain in-flight requests
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	fmt.Println("Shutdown complete")
}
