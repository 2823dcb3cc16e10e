package seeder

import (
	"log"
	"os"

	"ibarangay-be/util"

	"github.com/jmoiron/sqlx"
)

func adminSeeder(db *sqlx.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@barangay.local"
	}

	var userCount int
	err := db.Get(&userCount, "SELECT COUNT(*) FROM users WHERE email = $1", email)
	if err != nil {
		log.Fatalf("Failed to check admin user: %v", err)
	}

	if userCount > 0 {
		log.Println("Admin user already exists.")
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD must be set to seed the admin user")
	}

	hashedPassword, err := util.GenerateDeterministicHash(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var roleID int
	err = db.Get(&roleID, "SELECT id FROM roles WHERE name = 'admin'")
	if err != nil {
		log.Fatalf("Failed to get admin role ID: %v", err)
	}

	var userID int
	err = db.QueryRow(`
		INSERT INTO users (email, password, first_name, last_name, account_type, status, role_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, email, hashedPassword, "Barangay", "Administrator", "admin", "active", roleID).Scan(&userID)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Created admin user with ID: %d", userID)
}
