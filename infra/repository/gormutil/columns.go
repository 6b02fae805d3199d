package gormutil

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NullUUID stores uuid.Nil as SQL NULL.
func NullUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

// UUID reads a nullable id column back, NULL becoming uuid.Nil.
func UUID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

// ForUpdate adds SELECT ... FOR UPDATE to the query. The row stays locked
// until the surrounding transaction ends.
func ForUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
