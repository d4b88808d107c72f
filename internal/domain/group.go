package domain

import (
	"errors"
)

var (
	// ErrGroupNotFound indicates that the group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrDuplicateGroup indicates that a group with the given name already exists.
	ErrDuplicateGroup = errors.New("group already exists")
)

// Group holds a named member list. The member set is fixed at creation.
type Group struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}
