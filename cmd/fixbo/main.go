package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fixbo/fixbo/internal/api"
	"github.com/fixbo/fixbo/internal/cli"
	"github.com/fixbo/fixbo/internal/db"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dbPath := getEnv("DB_PATH", filepath.Join("data", "fixbo.db"))

	if len(os.Args) > 1 {
		runCommand(os.Args[1], os.Args[2:], dbPath)
		return
	}

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	port := getEnv("PORT", "8080")
	cookieSecure := getEnv("COOKIE_SECURE", "false") == "true"
	corsOrigins := getEnv("CORS_ORIGINS", "")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	handler := api.NewHandler(database, []byte(secretKey), cookieSecure)

	app := fiber.New(fiber.Config{
		AppName:               "FixBo",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	if corsOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowCredentials: true,
		}))
	}

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("FixBo listening on http://0.0.0.0:%s (db: %s)", port, dbPath)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func runCommand(name string, args []string, dbPath string) {
	switch name {
	case "reset-password":
		if len(args) != 1 {
			log.Fatal("usage: fixbo reset-password <email>")
		}
		if err := cli.RunResetPasswordCommand(dbPath, args[0]); err != nil {
			log.Fatalf("reset-password failed: %v", err)
		}
	case "set-password":
		if len(args) != 1 {
			log.Fatal("usage: fixbo set-password <email>")
		}
		if err := cli.RunSetPasswordCommand(dbPath, args[0]); err != nil {
			log.Fatalf("set-password failed: %v", err)
		}
	default:
		log.Fatalf("unknown command %q (available: reset-password, set-password)", name)
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
