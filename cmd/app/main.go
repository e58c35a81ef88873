package main

import (
	"movievault/internal/app"
	"movievault/pkg/config"

	_ "movievault/docs" // Swagger docs
)

// @title           MovieVault API
// @version         1.0
// @description     Personal movie collection service with token-based authentication

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
