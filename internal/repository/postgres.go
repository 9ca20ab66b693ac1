package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// isUUID guards uuid columns: PostgreSQL rejects malformed ids with a
// syntax error, which must read as "not found" rather than a storage failure.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
