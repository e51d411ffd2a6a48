// Package store reads and updates issue records held by the backing database.
package store

//go:generate mockgen -destination=mock_store.go -package=store spotfix-admin/store IssueStore

import (
	"context"
	"errors"
	"fmt"

	"spotfix-admin/models"
)

// ErrNotFound is returned when no issue matches the requested id.
var ErrNotFound = errors.New("issue not found")

// IssueStore is the dashboard's view of the issue collection.
type IssueStore interface {
	// List returns every issue ordered by creation time, newest first.
	List(ctx context.Context) ([]models.Issue, error)
	// Get returns the issue with the given id or an error wrapping ErrNotFound.
	Get(ctx context.Context, id string) (*models.Issue, error)
	// UpdateStatus sets the status of one issue.
	UpdateStatus(ctx context.Context, id string, status models.Status) error
}

// RetrievalError reports a failed read, including a missing record.
type RetrievalError struct {
	ID  string
	Err error
}

func (e *RetrievalError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("retrieving issues: %v", e.Err)
	}
	return fmt.Sprintf("retrieving issue %s: %v", e.ID, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// UpdateError reports a failed write.
type UpdateError struct {
	ID     string
	Status models.Status
	Err    error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("updating issue %s to %q: %v", e.ID, e.Status, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the issue does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
