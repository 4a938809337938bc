package store

import "fmt"

type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.ID)
}

type ConflictError struct {
	ID string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("item already exists: %s", e.ID)
}
