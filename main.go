package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Revocube-Technologies/Asset-Management-Api/cmd"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/auditlog"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/container"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/core/logger"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/database"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/middleware"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	log.Println("Connected to the database successfully!")

	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	app := container.NewAppContainer(db, zapLogger)

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.TimeoutMiddleware(30 * time.Second))

	router.GET("/health", middleware.HealthCheckMiddleware())

	app.LoginHandler.RegisterRoutes(router)

	protected := router.Group("")
	protected.Use(security.JWTMiddleware())
	protected.Use(auditlog.Middleware(app.AuditRecorder))

	app.AssetHandler.RegisterRoutes(protected)
	app.AssignmentHandler.RegisterRoutes(protected)
	app.RepairHandler.RegisterRoutes(protected)
	app.LocationHandler.RegisterRoutes(protected)
	app.DepartmentHandler.RegisterRoutes(protected)
	app.AdminHandler.RegisterRoutes(protected)
	app.AuditLogHandler.RegisterRoutes(protected)
	if app.ReportHandler != nil {
		app.ReportHandler.RegisterRoutes(protected)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		panic(err)
	}
}
