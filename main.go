package main

import (
	"log"

	"nxtsync/config"
	"nxtsync/database"
	adminRoutes "nxtsync/routers/adminRoutes"
	authRoutes "nxtsync/routers/authRoutes"
	certificateRoutes "nxtsync/routers/certificateRoutes"
	courseRoutes "nxtsync/routers/courseRoutes"
	studentRoutes "nxtsync/routers/studentRoutes"
	"nxtsync/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve the dashboard pages and generated certificate PDFs
	app.Static("/", config.AppConfig.PublicDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	studentRoutes.SetupStudentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)

	utils.InitializeOtpScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
