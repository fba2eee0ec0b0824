package db

import (
	"errors"
	"strings"

	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a unique constraint failure from
// Postgres or SQLite. A non-empty constraintName must also match the
// reported constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) && constraintName == "" {
		return true
	}
	detail := pkgerrors.DBDetailOf(err)
	if detail == nil || !detail.Unique {
		return false
	}
	return constraintName == "" || strings.Contains(detail.Constraint, constraintName)
}

// IsNotFound reports whether err is gorm's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
