package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []struct {
		name string
		sql  string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				email TEXT UNIQUE NOT NULL,
				password TEXT NOT NULL,
				first_name TEXT NOT NULL,
				last_name TEXT NOT NULL,
				phone VARCHAR(20),
				is_active BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"roles", `
			CREATE TABLE IF NOT EXISTS roles (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name TEXT UNIQUE NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"user_roles", `
			CREATE TABLE IF NOT EXISTS user_roles (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				user_id UUID NOT NULL REFERENCES users(id),
				role_id UUID NOT NULL REFERENCES roles(id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ,
				UNIQUE (user_id, role_id)
			)`},
		{"sessions", `
			CREATE TABLE IF NOT EXISTS sessions (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				expires_at TIMESTAMPTZ NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`},
		{"classes", `
			CREATE TABLE IF NOT EXISTS classes (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name TEXT UNIQUE NOT NULL,
				code TEXT UNIQUE NOT NULL,
				sort_order INTEGER NOT NULL DEFAULT 0,
				is_active BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"session_years", `
			CREATE TABLE IF NOT EXISTS session_years (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name TEXT UNIQUE NOT NULL,
				start_date DATE NOT NULL,
				end_date DATE NOT NULL,
				is_current BOOLEAN NOT NULL DEFAULT false,
				is_active BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"students", `
			CREATE TABLE IF NOT EXISTS students (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				admission_no TEXT UNIQUE NOT NULL,
				first_name TEXT NOT NULL,
				last_name TEXT NOT NULL,
				date_of_birth DATE,
				gender VARCHAR(10),
				address TEXT,
				class_id UUID REFERENCES classes(id),
				session_year_id UUID REFERENCES session_years(id),
				father_name TEXT NOT NULL DEFAULT '',
				father_phone VARCHAR(20) NOT NULL DEFAULT '',
				mother_name TEXT,
				birth_order INTEGER NOT NULL DEFAULT 0,
				sibling_waiver_percent DECIMAL(5,2) NOT NULL DEFAULT 0,
				sibling_waiver_reason TEXT,
				is_active BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"sibling_links", `
			CREATE TABLE IF NOT EXISTS sibling_links (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				student_id UUID NOT NULL REFERENCES students(id),
				sibling_id UUID NOT NULL REFERENCES students(id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (student_id, sibling_id)
			)`},
		{"fee_structures", `
			CREATE TABLE IF NOT EXISTS fee_structures (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				class_id UUID NOT NULL REFERENCES classes(id),
				session_year_id UUID NOT NULL REFERENCES session_years(id),
				annual_fee DECIMAL(10,2) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ,
				UNIQUE (class_id, session_year_id)
			)`},
		{"fee_records", `
			CREATE TABLE IF NOT EXISTS fee_records (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				student_id UUID NOT NULL REFERENCES students(id),
				session_year_id UUID NOT NULL REFERENCES session_years(id),
				fee_structure_id UUID REFERENCES fee_structures(id),
				total_amount DECIMAL(10,2) NOT NULL,
				paid_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
				balance_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
				is_monthly_tracked BOOLEAN NOT NULL DEFAULT false,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (student_id, session_year_id)
			)`},
		{"monthly_fee_tracking", `
			CREATE TABLE IF NOT EXISTS monthly_fee_tracking (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				fee_record_id UUID NOT NULL REFERENCES fee_records(id),
				academic_month INTEGER NOT NULL CHECK (academic_month BETWEEN 1 AND 12),
				academic_year INTEGER NOT NULL,
				monthly_amount DECIMAL(10,2) NOT NULL,
				paid_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
				due_date DATE NOT NULL,
				payment_status VARCHAR(10) NOT NULL DEFAULT 'pending',
				late_fee DECIMAL(10,2) NOT NULL DEFAULT 0,
				discount_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (fee_record_id, academic_month, academic_year)
			)`},
		{"payments", `
			CREATE TABLE IF NOT EXISTS payments (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				fee_record_id UUID NOT NULL REFERENCES fee_records(id),
				amount DECIMAL(10,2) NOT NULL,
				payment_method VARCHAR(20) NOT NULL,
				payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				receipt_no TEXT UNIQUE NOT NULL,
				received_by UUID REFERENCES users(id),
				notes TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`},
		{"payment_allocations", `
			CREATE TABLE IF NOT EXISTS payment_allocations (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				payment_id UUID NOT NULL REFERENCES payments(id),
				monthly_tracking_id UUID NOT NULL REFERENCES monthly_fee_tracking(id),
				allocated_amount DECIMAL(10,2) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (payment_id, monthly_tracking_id)
			)`},
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt.sql); err != nil {
			log.Printf("Failed to run migration for %s: %v", stmt.name, err)
			return err
		}
	}

	// Indexes used by the ledger and sibling lookups
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_mft_record_period ON monthly_fee_tracking (fee_record_id, academic_year, academic_month)`,
		`CREATE INDEX IF NOT EXISTS idx_mft_status_due ON monthly_fee_tracking (payment_status, due_date)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_record ON payments (fee_record_id)`,
		`CREATE INDEX IF NOT EXISTS idx_students_father ON students (father_name, father_phone)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_records_session ON fee_records (session_year_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			log.Printf("Failed to create index: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
