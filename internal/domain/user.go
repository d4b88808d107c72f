// Package domain provides definitions of all entities.
package domain

import (
	"errors"
)

var (
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser indicates that a user with the given email already exists.
	ErrDuplicateUser = errors.New("user already exists")
)

// User holds registered user data.
type User struct {
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Groups []string `json:"groups"`
}
