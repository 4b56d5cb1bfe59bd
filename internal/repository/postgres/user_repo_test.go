package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Тесты isUniqueViolation
// ============================================================================

func TestIsUniqueViolation_PgconnError(t *testing.T) {
	// Arrange
	err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}

	// Act & Assert
	assert.True(t, isUniqueViolation(err))
}

func TestIsUniqueViolation_PqError(t *testing.T) {
	// Arrange
	err := &pq.Error{Code: "23505"}

	// Act & Assert
	assert.True(t, isUniqueViolation(err))
}

func TestIsUniqueViolation_WrappedError(t *testing.T) {
	// Arrange: ошибка драйвера обернута на пути через GORM
	err := fmt.Errorf("create failed: %w", &pgconn.PgError{Code: "23505"})

	// Act & Assert
	assert.True(t, isUniqueViolation(err))
}

func TestIsUniqueViolation_OtherCodesIgnored(t *testing.T) {
	// Act & Assert: другие коды и посторонние ошибки не считаются конфликтом
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "40001"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}
