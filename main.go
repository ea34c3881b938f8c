package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lms/config"
	"lms/database"
	certificateRoutes "lms/routers/certificateRoutes"
	progressRoutes "lms/routers/progressRoutes"
	"lms/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve rendered certificate PDFs
	app.Static("/uploads/certificates", config.AppConfig.StorageDir)

	progressRoutes.SetupProgressRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)

	// The webinar certificate sweep is owned by the process lifecycle
	certScheduler := scheduler.InitializeCertificateScheduler()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down...")
		certScheduler.Stop()
		_ = app.Shutdown()
	}()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}
