package migrate

import (
	"log"

	"github.com/jmoiron/sqlx"
)

func RunMigrations(db *sqlx.DB) {
	log.Println("Starting migrations...")

	query := `
	CREATE TABLE IF NOT EXISTS roles (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		permissions TEXT[]
	);

	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		account_type VARCHAR(50) NOT NULL DEFAULT 'resident',
		status VARCHAR(50) NOT NULL DEFAULT 'pending_approval',
		role_id INT REFERENCES roles(id) ON DELETE SET NULL,
		created_at TIMESTAMP DEFAULT NOW(),
		updated_at TIMESTAMP DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS document_requests (
		id SERIAL PRIMARY KEY,
		resident_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		document_types TEXT[] NOT NULL,
		purpose TEXT NOT NULL DEFAULT '',
		status VARCHAR(50) NOT NULL DEFAULT 'Pending',
		rejection_reason TEXT,
		processing_stage VARCHAR(50) NOT NULL DEFAULT 'Submitted',
		pickup_period JSONB,
		scheduled_claim_date TIMESTAMP,
		scheduled_claim_time VARCHAR(10),
		priority_score INT NOT NULL DEFAULT 0,
		estimated_completion_date TIMESTAMP,
		auto_archive_date TIMESTAMP,
		is_expired BOOLEAN NOT NULL DEFAULT false,
		expiration_date TIMESTAMP,
		automation_notes TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMP DEFAULT NOW(),
		updated_at TIMESTAMP DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_document_requests_resident_id ON document_requests(resident_id);
	CREATE INDEX IF NOT EXISTS idx_document_requests_status ON document_requests(status);
	CREATE INDEX IF NOT EXISTS idx_document_requests_is_expired ON document_requests(is_expired);

	CREATE TABLE IF NOT EXISTS blotter_cases (
		id SERIAL PRIMARY KEY,
		case_number VARCHAR(50) NOT NULL UNIQUE,
		complainant_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		accused JSONB NOT NULL,
		incident_date TIMESTAMP NOT NULL,
		date_reported TIMESTAMP NOT NULL DEFAULT NOW(),
		location TEXT NOT NULL DEFAULT '',
		complaint_type VARCHAR(100) NOT NULL,
		complaint_details TEXT NOT NULL DEFAULT '',
		status VARCHAR(50) NOT NULL DEFAULT 'Pending',
		current_meeting INT NOT NULL DEFAULT 0,
		meetings JSONB NOT NULL DEFAULT '[]',
		contact_history JSONB NOT NULL DEFAULT '[]',
		cfa_issued BOOLEAN NOT NULL DEFAULT false,
		cfa_issue_date TIMESTAMP,
		cfa_reason TEXT,
		document_history JSONB NOT NULL DEFAULT '[]',
		resolution_details TEXT,
		resolved_date TIMESTAMP,
		created_at TIMESTAMP DEFAULT NOW(),
		updated_at TIMESTAMP DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_blotter_cases_complainant_id ON blotter_cases(complainant_id);
	CREATE INDEX IF NOT EXISTS idx_blotter_cases_status ON blotter_cases(status);
	CREATE INDEX IF NOT EXISTS idx_blotter_cases_date_reported ON blotter_cases(date_reported);

	CREATE TABLE IF NOT EXISTS announcements (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		category VARCHAR(50) NOT NULL DEFAULT 'general',
		is_published BOOLEAN NOT NULL DEFAULT false,
		published_at TIMESTAMP,
		created_by INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP DEFAULT NOW(),
		updated_at TIMESTAMP DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_announcements_is_published ON announcements(is_published);

	CREATE TABLE IF NOT EXISTS message_threads (
		id UUID PRIMARY KEY,
		resident_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'open',
		last_message_at TIMESTAMP DEFAULT NOW(),
		created_at TIMESTAMP DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_message_threads_resident_id ON message_threads(resident_id);

	CREATE TABLE IF NOT EXISTS messages (
		id SERIAL PRIMARY KEY,
		thread_id UUID NOT NULL REFERENCES message_threads(id) ON DELETE CASCADE,
		sender_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		from_staff BOOLEAN NOT NULL DEFAULT false,
		body TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_messages_thread_id ON messages(thread_id);

	CREATE TABLE IF NOT EXISTS notifications (
		id SERIAL PRIMARY KEY,
		user_id INT REFERENCES users(id) ON DELETE CASCADE,
		event VARCHAR(100) NOT NULL,
		title VARCHAR(255) NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		payload JSONB,
		is_read BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
	CREATE INDEX IF NOT EXISTS idx_notifications_is_read ON notifications(is_read);
	`

	_, err := db.Exec(query)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully")
}
