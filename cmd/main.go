package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Amirkhan01/campaign-system/config"
	"github.com/Amirkhan01/campaign-system/db"
	"github.com/Amirkhan01/campaign-system/engine"
	"github.com/Amirkhan01/campaign-system/handlers"
	"github.com/Amirkhan01/campaign-system/live"
	"github.com/Amirkhan01/campaign-system/repositories"
	api "github.com/Amirkhan01/campaign-system/routes"
	"github.com/Amirkhan01/campaign-system/services"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const schedulerInterval = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Int("display_utc_offset_min", cfg.DisplayUTCOffsetMin),
	)

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	refZone := engine.ReferenceZone(cfg.DisplayUTCOffsetMin)

	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	campaignRepo := repositories.NewPostgresCampaignRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	goalRepo := repositories.NewPostgresGoalRepository(dbConn)
	logger.Info("repositories initialized")

	campaignService := services.NewCampaignService(campaignRepo, groupRepo, teamRepo, matchRepo, logger)
	groupService := services.NewGroupService(groupRepo, campaignRepo, teamRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo, groupRepo)
	matchService := services.NewMatchService(matchRepo, teamRepo, playerRepo, goalRepo, wsHub, refZone, logger)
	standingsService := services.NewStandingsService(groupRepo, teamRepo, matchRepo)
	bracketService := services.NewBracketService(dbConn, campaignRepo, matchRepo, wsHub, logger)
	scorerService := services.NewScorerService(campaignRepo, playerRepo, teamRepo, matchRepo, goalRepo)
	logger.Info("services initialized")

	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("campaign status scheduler started", slog.Duration("interval", schedulerInterval))

		if err := campaignService.AutoUpdateStatusesByDates(context.Background()); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}

		for range ticker.C {
			if err := campaignService.AutoUpdateStatusesByDates(context.Background()); err != nil {
				logger.Error("scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	campaignHandler := handlers.NewCampaignHandler(campaignService, groupService)
	teamHandler := handlers.NewTeamHandler(teamService)
	matchHandler := handlers.NewMatchHandler(matchService)
	boardHandler := handlers.NewBoardHandler(standingsService, bracketService, scorerService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, campaignService)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.CORSAllowedOrigins,
		campaignHandler,
		teamHandler,
		matchHandler,
		boardHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
