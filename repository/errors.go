// Package repository maps the Store, Item and User entities onto the database.
//
// Every repository wraps a shared *gorm.DB and binds each call to the caller's
// context. Lookups that find nothing return ErrNotFound; unique-key violations
// return ErrDuplicate.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate record")
	ErrStoreMissing = errors.New("store does not exist")
)

// translate converts gorm errors into this package's sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrStoreMissing
	default:
		return err
	}
}
