package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"

	"golang.org/x/crypto/bcrypt"
)

// StudentFilters represents filtering options for students
type StudentFilters struct {
	Search        string
	ClassID       string
	SessionYearID string
	Gender        string
	SortBy        string
	SortOrder     string
	Limit         int
	Offset        int
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = $1
	`
	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, nil
}

// CreateUser inserts a user with a hashed password.
func CreateUser(db *sql.DB, user *models.User) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (email, password, first_name, last_name, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, true, NOW(), NOW()) RETURNING id, created_at, updated_at`
	return db.QueryRow(query, user.Email, hashed, user.FirstName, user.LastName).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
}

func CreateSession(db *sql.DB, sessionID interface{}, userID string, expiresAt time.Time) error {
	query := `INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	_, err := db.Exec(query, sessionID, userID, expiresAt, time.Now())
	return err
}

func GetSessionByID(db *sql.DB, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	query := `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = $1 AND expires_at > NOW()`

	err := db.QueryRow(query, sessionID).Scan(
		&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt,
	)

	if err != nil {
		return nil, err
	}
	return session, nil
}

func DeleteSession(db *sql.DB, sessionID string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	_, err := db.Exec(query, sessionID)
	return err
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

// studentSortColumns whitelists the sortable columns; sort input never
// reaches the query text directly.
var studentSortColumns = map[string]string{
	"first_name":    "s.first_name",
	"last_name":     "s.last_name",
	"admission_no":  "s.admission_no",
	"date_of_birth": "s.date_of_birth",
	"created_at":    "s.created_at",
	"class":         "c.name",
}

func studentOrderClause(sortBy, sortOrder string) string {
	column, ok := studentSortColumns[sortBy]
	if !ok {
		column = "s.first_name"
	}
	if strings.EqualFold(sortOrder, "desc") {
		column += " DESC"
	}
	// Stable tiebreak for equal keys
	return column + ", s.id"
}

// GetStudents retrieves students with optional filters, joined with class and
// session year names.
func GetStudents(db *sql.DB, filters StudentFilters) ([]*models.Student, error) {
	baseQuery := `SELECT s.id, s.admission_no, s.first_name, s.last_name, s.date_of_birth, s.gender, s.address,
				  s.class_id, s.session_year_id, s.father_name, s.father_phone, s.mother_name,
				  s.birth_order, s.sibling_waiver_percent, s.sibling_waiver_reason,
				  s.is_active, s.created_at, s.updated_at,
				  c.name as class_name
				  FROM students s
				  LEFT JOIN classes c ON s.class_id = c.id
				  WHERE s.is_active = true AND s.deleted_at IS NULL`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		conditions = append(conditions, fmt.Sprintf(
			`(LOWER(s.admission_no) LIKE $%d OR LOWER(s.first_name) LIKE $%d OR LOWER(s.last_name) LIKE $%d
			  OR LOWER(s.first_name || ' ' || s.last_name) LIKE $%d)`,
			argIndex, argIndex+1, argIndex+2, argIndex+3))
		args = append(args, pattern, pattern, pattern, pattern)
		argIndex += 4
	}
	if filters.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("s.class_id = $%d", argIndex))
		args = append(args, filters.ClassID)
		argIndex++
	}
	if filters.SessionYearID != "" {
		conditions = append(conditions, fmt.Sprintf("s.session_year_id = $%d", argIndex))
		args = append(args, filters.SessionYearID)
		argIndex++
	}
	if filters.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("s.gender = $%d", argIndex))
		args = append(args, filters.Gender)
		argIndex++
	}

	for _, cond := range conditions {
		baseQuery += " AND " + cond
	}

	baseQuery += " ORDER BY " + studentOrderClause(filters.SortBy, filters.SortOrder)
	if filters.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		var className sql.NullString
		err := rows.Scan(
			&student.ID, &student.AdmissionNo, &student.FirstName, &student.LastName,
			&student.DateOfBirth, &student.Gender, &student.Address,
			&student.ClassID, &student.SessionYearID,
			&student.FatherName, &student.FatherPhone, &student.MotherName,
			&student.BirthOrder, &student.SiblingWaiverPercent, &student.SiblingWaiverReason,
			&student.IsActive, &student.CreatedAt, &student.UpdatedAt,
			&className,
		)
		if err != nil {
			continue
		}
		if className.Valid {
			student.Class = &models.Class{Name: className.String}
			if student.ClassID != nil {
				student.Class.ID = *student.ClassID
			}
		}
		students = append(students, student)
	}
	if students == nil {
		students = []*models.Student{}
	}
	return students, nil
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT id, admission_no, first_name, last_name, date_of_birth, gender, address,
			  class_id, session_year_id, father_name, father_phone, mother_name,
			  birth_order, sibling_waiver_percent, sibling_waiver_reason,
			  is_active, created_at, updated_at
			  FROM students WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, studentID).Scan(
		&student.ID, &student.AdmissionNo, &student.FirstName, &student.LastName,
		&student.DateOfBirth, &student.Gender, &student.Address,
		&student.ClassID, &student.SessionYearID,
		&student.FatherName, &student.FatherPhone, &student.MotherName,
		&student.BirthOrder, &student.SiblingWaiverPercent, &student.SiblingWaiverReason,
		&student.IsActive, &student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `INSERT INTO students (admission_no, first_name, last_name, date_of_birth, gender, address,
			  class_id, session_year_id, father_name, father_phone, mother_name, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query,
		student.AdmissionNo, student.FirstName, student.LastName,
		student.DateOfBirth, student.Gender, student.Address,
		student.ClassID, student.SessionYearID,
		student.FatherName, student.FatherPhone, student.MotherName,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func UpdateStudent(db *sql.DB, student *models.Student) error {
	query := `UPDATE students SET first_name = $1, last_name = $2, date_of_birth = $3, gender = $4,
			  address = $5, class_id = $6, session_year_id = $7,
			  father_name = $8, father_phone = $9, mother_name = $10, updated_at = NOW()
			  WHERE id = $11 AND deleted_at IS NULL`

	result, err := db.Exec(query,
		student.FirstName, student.LastName, student.DateOfBirth, student.Gender,
		student.Address, student.ClassID, student.SessionYearID,
		student.FatherName, student.FatherPhone, student.MotherName,
		student.ID,
	)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err != nil || rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func SoftDeleteStudent(db *sql.DB, studentID string) error {
	query := `UPDATE students SET deleted_at = NOW(), is_active = false, updated_at = NOW() WHERE id = $1`
	result, err := db.Exec(query, studentID)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err != nil || rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
