package seeder

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func roleSeeder(db *sqlx.DB) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM roles")
	if err != nil {
		log.Fatalf("Failed to check roles table: %v", err)
	}

	if count > 0 {
		log.Println("Roles already seeded.")
		return
	}

	roles := []struct {
		name        string
		permissions pq.StringArray
	}{
		{"admin", pq.StringArray{
			"requests:manage",
			"blotter:manage",
			"announcements:manage",
			"users:manage",
			"roles:manage",
		}},
		{"staff", pq.StringArray{
			"requests:manage",
			"blotter:manage",
			"announcements:manage",
			"users:approve",
		}},
		{"resident", pq.StringArray{
			"requests:own",
			"blotter:file",
			"messages:own",
		}},
	}

	for _, r := range roles {
		_, err = db.Exec(
			"INSERT INTO roles (name, permissions) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			r.name,
			r.permissions,
		)
		if err != nil {
			log.Fatalf("Failed to insert role %s: %v", r.name, err)
		}
	}

	log.Println("Seeded default roles successfully.")
}
