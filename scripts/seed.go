package main

import (
	"log"

	"nxtsync/config"
	"nxtsync/database"
	"nxtsync/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the default admin account and the course catalogue. Safe to run
// repeatedly.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	adminEmail := "admin@nxtsync.com"
	var admin models.Admin
	if err := db.Where("email = ? AND is_deleted = ?", adminEmail, false).First(&admin).Error; err != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), config.AppConfig.SaltRound)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		admin = models.Admin{
			Name:     "NXTSYNC Admin",
			Email:    adminEmail,
			Password: string(hashedPassword),
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Created admin account %s", adminEmail)
	} else {
		log.Printf("Admin account %s already exists, skipping", adminEmail)
	}

	courses := []models.Course{
		{CourseName: "Artificial Intelligence & Machine Learning", CourseCode: "AI-ML", Duration: "6 Months", Description: "Foundations of AI, supervised and unsupervised learning, and model deployment.", CreatedBy: admin.ID},
		{CourseName: "Data Science & Data Analytics", CourseCode: "DS-DA", Duration: "6 Months", Description: "Statistics, data wrangling, visualisation and analytics pipelines.", CreatedBy: admin.ID},
		{CourseName: "Cyber Security & Ethical Hacking", CourseCode: "CS-EH", Duration: "6 Months", Description: "Network security, penetration testing and defensive practices.", CreatedBy: admin.ID},
		{CourseName: "Cloud Computing & DevOps", CourseCode: "CC-DO", Duration: "6 Months", Description: "Cloud platforms, CI/CD pipelines and infrastructure automation.", CreatedBy: admin.ID},
		{CourseName: "Full Stack Web Development", CourseCode: "FS-WD", Duration: "6 Months", Description: "Frontend, backend and database development end to end.", CreatedBy: admin.ID},
	}

	seeded := 0
	for _, course := range courses {
		var existing models.Course
		if err := db.Where("course_code = ? AND is_deleted = ?", course.CourseCode, false).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&course).Error; err != nil {
			log.Fatalf("Failed to seed course %s: %v", course.CourseCode, err)
		}
		seeded++
	}

	log.Printf("Seeding complete: %d new course(s)", seeded)
}
