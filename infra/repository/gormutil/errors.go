// Package gormutil holds the helpers shared by the gorm repositories: error
// mapping, nullable id columns and row locking.
package gormutil

import (
	"errors"

	"github.com/amirasaad/agribank/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors, keeping
// database concerns inside the infrastructure layer. It walks the error
// chain; errors it does not know are returned unchanged.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	for current := err; current != nil; current = errors.Unwrap(current) {
		switch {
		case errors.Is(current, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(current, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
	}
	return err
}

// WrapError runs a GORM operation and maps its error.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&m).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}

// Lookup maps a failed single-row lookup: a missing row becomes notFound,
// anything else goes through MapGormErrorToDomain.
func Lookup(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return MapGormErrorToDomain(err)
}

// Write maps a failed insert: a unique violation becomes conflict, anything
// else goes through MapGormErrorToDomain.
func Write(err error, conflict error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return MapGormErrorToDomain(err)
}
