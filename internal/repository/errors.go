// Package repository implements data access for the rental service on
// top of database/sql.  Methods with a Tx suffix run inside a caller
// supplied transaction and never commit or roll back themselves; the
// caller owns the transaction boundary.
package repository

import (
	"errors"
	"strings"
)

// ErrUserIDExists is returned when an account insert collides with an
// existing user id. Handlers translate this into an HTTP 409 response.
var ErrUserIDExists = errors.New("user id already exists")

// ErrCarIDExists is returned when a vehicle insert collides with an
// existing id or registration plate; both columns carry unique keys.
var ErrCarIDExists = errors.New("car already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
