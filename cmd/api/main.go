package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/midnighthq/lottery-backend/api/routes"
	"github.com/midnighthq/lottery-backend/internal/config"
	"github.com/midnighthq/lottery-backend/internal/handlers"
	"github.com/midnighthq/lottery-backend/internal/repositories"
	"github.com/midnighthq/lottery-backend/internal/repositories/memory"
	mongorepo "github.com/midnighthq/lottery-backend/internal/repositories/mongodb"
	"github.com/midnighthq/lottery-backend/internal/scheduler"
	"github.com/midnighthq/lottery-backend/internal/services"
	"github.com/midnighthq/lottery-backend/pkg/mongodb"
	"golang.org/x/exp/slog"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid lottery timezone %q: %v", cfg.Lottery.Timezone, err)
	}

	// Initialize repositories: MongoDB when a URI is configured, otherwise
	// the in-memory store (local development).
	var (
		participantRepo repositories.ParticipantRepository
		restaurantRepo  repositories.RestaurantRepository
		drawRepo        repositories.DrawRepository
		ballotRepo      repositories.BallotRepository
	)
	if cfg.MongoDB.URI != "" {
		mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Printf("Error disconnecting from MongoDB: %v", err)
			}
		}()

		db := mongoClient.Database(cfg.MongoDB.Database)
		if err := mongodb.EnsureIndexes(context.Background(), db); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}

		participantRepo = mongorepo.NewParticipantRepository(db)
		restaurantRepo = mongorepo.NewRestaurantRepository(db)
		drawRepo = mongorepo.NewDrawRepository(db)
		ballotRepo = mongorepo.NewBallotRepository(db)
	} else {
		slog.Warn("No MongoDB URI configured, using in-memory store")
		participantRepo = memory.NewParticipantRepository()
		restaurantRepo = memory.NewRestaurantRepository()
		drawRepo = memory.NewDrawRepository()
		ballotRepo = memory.NewBallotRepository()
	}

	// Initialize services
	participantService := services.NewParticipantService(participantRepo, ballotRepo, drawRepo)
	restaurantService := services.NewRestaurantService(restaurantRepo)
	drawService := services.NewDrawService(drawRepo, participantRepo, loc)
	ballotService := services.NewBallotService(ballotRepo, participantRepo, drawService)
	resolverService := services.NewResolverService(drawService, ballotService)

	// Initialize handlers
	handlerDeps := routes.HandlerDependencies{
		ParticipantHandler: handlers.NewParticipantHandler(participantService),
		RestaurantHandler:  handlers.NewRestaurantHandler(restaurantService),
		DrawHandler:        handlers.NewDrawHandler(drawService, ballotService, resolverService),
		BallotHandler:      handlers.NewBallotHandler(ballotService),
	}

	// Start the midnight resolution scheduler
	drawScheduler, err := scheduler.New(resolverService, cfg.Lottery.ResolveCron, loc)
	if err != nil {
		log.Fatalf("Failed to create draw scheduler: %v", err)
	}
	drawScheduler.Start()
	defer drawScheduler.Stop()

	// Setup router
	router := routes.SetupRouter(cfg, handlerDeps)

	// Start the server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}

func setupLogging(level string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}
