package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "enrollments_student_bootcamp_key"}

	assert.True(t, IsDuplicateConstraintError(dup, "enrollments_student_bootcamp_key"))
	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", dup), ""))
	assert.False(t, IsDuplicateConstraintError(dup, "sessions_bootcamp_day_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("23505"), ""))
}

func TestOtherClassifiers(t *testing.T) {
	assert.True(t, IsForeignKeyError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsCheckViolation(&pgconn.PgError{Code: "23514", ConstraintName: "bootcamps_capacity_check"}, "bootcamps_capacity_check"))
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, IsNotFound(errors.New("no rows")))
}
