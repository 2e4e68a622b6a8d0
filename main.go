package main

import (
	"log"

	"lms/config"
	"lms/database"
	assignmentRoutes "lms/routers/assignmentRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	discussionRoutes "lms/routers/discussionRoutes"
	statsRoutes "lms/routers/statsRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	database.ConnectMongo()
	defer database.DisconnectMongo()

	database.SeedAdmin()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	discussionRoutes.SetupDiscussionRoutes(app)
	assignmentRoutes.SetupAssignmentRoutes(app)
	statsRoutes.SetupStatsRoutes(app)

	// Periodic cross-store orphan scan
	reconciler := utils.StartReconciler(config.AppConfig.ReconcileSpec)
	defer reconciler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
