package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roster-service/internal/auth"
	"roster-service/internal/config"
	"roster-service/internal/database"
	"roster-service/internal/generator"
	"roster-service/internal/handler"
	"roster-service/internal/repository"
	"roster-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Репозитории
	scheduleRepo := repository.NewScheduleRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	userRepo := repository.NewUserRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Движок генерации и общий локер расписаний
	engine := generator.NewEngine(generator.Config{
		MaxAssignmentsPerMonth:    cfg.MaxAssignmentsPerMonth,
		MinDaysBetweenAssignments: cfg.MinDaysBetweenAssignments,
	})
	locks := usecase.NewScheduleLocker()

	// Use Cases
	scheduleUC := usecase.NewScheduleCoordinator(scheduleRepo, userRepo, areaRepo, availabilityRepo, historyRepo, engine, locks, time.Now)
	swapUC := usecase.NewSwapWorkflow(scheduleRepo, swapRepo, userRepo, availabilityRepo, locks, time.Now)

	// Токены доступа
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Hour)

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	apiHandler := handler.NewAPIHandler(scheduleUC, swapUC, logger)
	handler.RegisterRoutes(e, apiHandler, jwtManager)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
