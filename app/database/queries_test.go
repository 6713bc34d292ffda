package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentOrderClause(t *testing.T) {
	tests := []struct {
		sortBy    string
		sortOrder string
		want      string
	}{
		{"first_name", "asc", "s.first_name, s.id"},
		{"admission_no", "desc", "s.admission_no DESC, s.id"},
		{"created_at", "DESC", "s.created_at DESC, s.id"},
		{"class", "asc", "c.name, s.id"},
		// Unknown columns fall back rather than reach the query text
		{"password; DROP TABLE students", "asc", "s.first_name, s.id"},
		{"", "", "s.first_name, s.id"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, studentOrderClause(tt.sortBy, tt.sortOrder), "sort_by=%q", tt.sortBy)
	}
}

func TestGetStudentsAppliesSortOrder(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "admission_no", "first_name", "last_name", "date_of_birth", "gender", "address",
		"class_id", "session_year_id", "father_name", "father_phone", "mother_name",
		"birth_order", "sibling_waiver_percent", "sibling_waiver_reason",
		"is_active", "created_at", "updated_at", "class_name",
	}).
		AddRow("stu-2", "ADM-002", "Bala", "Kumar", now, "male", nil,
			"class-1", "sy-1", "Raj Kumar", "9876543210", nil,
			0, 0.0, nil, true, now, now, "Class 1").
		AddRow("stu-1", "ADM-001", "Asha", "Kumar", now, "female", nil,
			"class-1", "sy-1", "Raj Kumar", "9876543210", nil,
			0, 0.0, nil, true, now, now, "Class 1")

	mock.ExpectQuery(`ORDER BY s\.admission_no DESC, s\.id LIMIT`).
		WithArgs(50, 0).
		WillReturnRows(rows)

	students, err := GetStudents(db, StudentFilters{
		SortBy:    "admission_no",
		SortOrder: "desc",
		Limit:     50,
	})
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "ADM-002", students[0].AdmissionNo)
	assert.Equal(t, "ADM-001", students[1].AdmissionNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}
