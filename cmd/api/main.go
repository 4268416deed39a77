// @title MedQuiz API
// @version 1.0
// @description Quiz generation, grading and study notes for MBBS and Nursing students.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"medquiz/internal/adapter"
	"medquiz/internal/adapter/llm"
	"medquiz/internal/cache"
	"medquiz/internal/config"
	"medquiz/internal/database"
	"medquiz/internal/domain"
	"medquiz/internal/handler"
	"medquiz/internal/logger"
	"medquiz/internal/middleware"
	"medquiz/internal/observability"
	"medquiz/internal/repository"
	"medquiz/internal/service"

	_ "medquiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, cfg.Logger.Env)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	generators := llm.BuildGenerators(ctx, cfg.Providers)
	chain := service.NewProviderChain(generators...)
	if len(generators) == 0 {
		appLogger.Warn("No text-generation provider configured, template quizzes and notes only")
	}
	appLogger.Info("Provider chain initialized", zap.Strings("providers", chain.Providers()))

	var attemptRepo domain.AttemptRepository
	if cfg.DB.Host != "" {
		db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		attemptRepo = repository.NewAttemptRepository(db)
	} else {
		appLogger.Warn("Database not configured, signed-in results will not be saved")
	}

	var resultCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		resultCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	} else {
		appLogger.Warn("Redis not configured, anonymous results will not be retrievable")
	}

	authService := service.NewAnonymousAuthService()
	if cfg.JWT.SecretKey != "" {
		authService, err = service.NewAuthService(cfg.JWT)
		if err != nil {
			appLogger.Fatal("Failed to create AuthService", zap.Error(err))
		}
	} else {
		appLogger.Warn("JWT secret not configured, every request is treated as anonymous")
	}

	attemptService := service.NewAttemptService(attemptRepo,
		service.NewAnonymousResultCacheService(resultCache, cfg.Cache.AnonymousResultTTL))
	quizService := service.NewQuizService(
		service.NewNotesResolver(chain),
		service.NewQuizSynthesizer(chain),
		attemptService,
	)
	notesService := service.NewNotesService(chain)
	tutorService := service.NewTutorService(chain)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(observability.Middleware())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app.Group("/api"), handler.Handlers{
		Quiz:    handler.NewQuizHandler(quizService),
		Results: handler.NewResultsHandler(attemptService),
		Notes:   handler.NewNotesHandler(notesService),
		Tutor:   handler.NewTutorHandler(tutorService),
		Health:  handler.NewHealthHandler(chain.Providers(), resultCache),
	}, authService)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})
	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	appLogger.Info("Server exited gracefully")
}
