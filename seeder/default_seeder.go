package seeder

import (
	"log"

	"github.com/jmoiron/sqlx"
)

func RunSeeder(db *sqlx.DB) {
	log.Println("Running seeders...")
	roleSeeder(db)
	adminSeeder(db)
	log.Println("Seeders completed.")
}
