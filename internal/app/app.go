package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	controller "movievault/internal/controller/http"
	"movievault/internal/repo/persistent"
	"movievault/internal/usecase"
	"movievault/pkg/cache"
	"movievault/pkg/config"
	"movievault/pkg/database"
	"movievault/pkg/jwt"
	"movievault/pkg/logger"
	"movievault/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis, continuing without cache: %v", err)
		redisClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		jwtService:  jwtService,
	}, nil
}

func (a *App) Run() error {
	// Repositories
	userRepo := persistent.NewUserRepository(a.db)
	movieRepo := persistent.NewMovieRepository(a.db)

	// Use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, a.jwtService, a.log)
	movieUseCase := usecase.NewMovieUseCase(movieRepo, a.redisClient, a.log)

	// HTTP handlers
	authHandler := controller.NewAuthHandler(authUseCase, a.log)
	movieHandler := controller.NewMovieHandler(movieUseCase, a.log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	guard := middleware.Auth(a.jwtService, authUseCase)
	authLimit := middleware.RateLimit(
		a.redisClient,
		a.cfg.AuthRateLimit,
		time.Duration(a.cfg.AuthRateWindowSecs)*time.Second,
	)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authLimit, authHandler.Register)
			auth.POST("/login", authLimit, authHandler.Login)
			auth.GET("/me", guard, authHandler.Me)
		}

		movies := api.Group("/movies")
		movies.Use(guard)
		{
			movies.GET("", movieHandler.ListMovies)
			movies.POST("", movieHandler.CreateMovie)
			movies.GET("/user/my-movies", movieHandler.MyMovies)
			movies.GET("/:id", movieHandler.GetMovie)
			movies.PUT("/:id", movieHandler.UpdateMovie)
			movies.DELETE("/:id", movieHandler.DeleteMovie)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("MovieVault API starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("MovieVault API exited")
	a.log.Sync()
	return nil
}
