// Package repository wraps all persistence access behind per-entity
// interfaces exposing only the query shapes the services use.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up record does not exist. Services
// translate it into their NotFound error kind.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
