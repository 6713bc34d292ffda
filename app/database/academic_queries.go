package database

import (
	"database/sql"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
)

// GetActiveClassesSimple retrieves a simple list of active classes (ID, Name, Code)
func GetActiveClassesSimple(db *sql.DB) ([]models.Class, error) {
	query := `SELECT id, name, code FROM classes WHERE is_active = true AND deleted_at IS NULL ORDER BY sort_order, name ASC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Code); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// GetSessionYears retrieves all session years, newest first.
func GetSessionYears(db *sql.DB) ([]models.SessionYear, error) {
	query := `SELECT id, name, start_date, end_date, is_current, is_active, created_at, updated_at
			  FROM session_years WHERE deleted_at IS NULL ORDER BY start_date DESC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []models.SessionYear
	for rows.Next() {
		var sy models.SessionYear
		if err := rows.Scan(&sy.ID, &sy.Name, &sy.StartDate, &sy.EndDate,
			&sy.IsCurrent, &sy.IsActive, &sy.CreatedAt, &sy.UpdatedAt); err != nil {
			return nil, err
		}
		years = append(years, sy)
	}
	return years, nil
}

// GetCurrentSessionYear returns the session year flagged as current.
func GetCurrentSessionYear(db *sql.DB) (*models.SessionYear, error) {
	sy := &models.SessionYear{}
	query := `SELECT id, name, start_date, end_date, is_current, is_active, created_at, updated_at
			  FROM session_years WHERE is_current = true AND deleted_at IS NULL LIMIT 1`
	err := db.QueryRow(query).Scan(&sy.ID, &sy.Name, &sy.StartDate, &sy.EndDate,
		&sy.IsCurrent, &sy.IsActive, &sy.CreatedAt, &sy.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sy, nil
}

// CreateSessionYear inserts a session year; marking it current unsets the
// previous one in the same transaction.
func CreateSessionYear(db *sql.DB, sy *models.SessionYear) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if sy.IsCurrent {
		if _, err := tx.Exec(`UPDATE session_years SET is_current = false, updated_at = NOW() WHERE is_current = true`); err != nil {
			return err
		}
	}

	query := `INSERT INTO session_years (name, start_date, end_date, is_current, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(query, sy.Name, sy.StartDate, sy.EndDate, sy.IsCurrent).Scan(
		&sy.ID, &sy.CreatedAt, &sy.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// CreateClass inserts a class.
func CreateClass(db *sql.DB, c *models.Class) error {
	query := `INSERT INTO classes (name, code, sort_order, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return db.QueryRow(query, c.Name, c.Code, c.SortOrder).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetFeeStructure returns the fee structure for a class within a session year.
// sql.ErrNoRows signals that no structure was configured.
func GetFeeStructure(db *sql.DB, classID, sessionYearID string) (*models.FeeStructure, error) {
	fs := &models.FeeStructure{}
	query := `SELECT id, class_id, session_year_id, annual_fee, created_at, updated_at
			  FROM fee_structures
			  WHERE class_id = $1 AND session_year_id = $2 AND deleted_at IS NULL`
	err := db.QueryRow(query, classID, sessionYearID).Scan(
		&fs.ID, &fs.ClassID, &fs.SessionYearID, &fs.AnnualFee, &fs.CreatedAt, &fs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// UpsertFeeStructure creates or updates the annual fee for a class/session pair.
func UpsertFeeStructure(db *sql.DB, fs *models.FeeStructure) error {
	query := `INSERT INTO fee_structures (class_id, session_year_id, annual_fee, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())
			  ON CONFLICT (class_id, session_year_id)
			  DO UPDATE SET annual_fee = EXCLUDED.annual_fee, updated_at = NOW(), deleted_at = NULL
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, fs.ClassID, fs.SessionYearID, fs.AnnualFee).Scan(
		&fs.ID, &fs.CreatedAt, &fs.UpdatedAt,
	)
}

// ListFeeStructures returns fee structures for a session year with class names.
func ListFeeStructures(db *sql.DB, sessionYearID string) ([]*models.FeeStructure, error) {
	query := `SELECT fs.id, fs.class_id, fs.session_year_id, fs.annual_fee, fs.created_at, fs.updated_at,
			  c.name, c.code
			  FROM fee_structures fs
			  JOIN classes c ON fs.class_id = c.id
			  WHERE fs.session_year_id = $1 AND fs.deleted_at IS NULL
			  ORDER BY c.sort_order, c.name`
	rows, err := db.Query(query, sessionYearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var structures []*models.FeeStructure
	for rows.Next() {
		fs := &models.FeeStructure{Class: &models.Class{}}
		if err := rows.Scan(&fs.ID, &fs.ClassID, &fs.SessionYearID, &fs.AnnualFee,
			&fs.CreatedAt, &fs.UpdatedAt, &fs.Class.Name, &fs.Class.Code); err != nil {
			continue
		}
		fs.Class.ID = fs.ClassID
		structures = append(structures, fs)
	}
	if structures == nil {
		structures = []*models.FeeStructure{}
	}
	return structures, nil
}
