package core

import "github.com/google/uuid"

// NewIdentifier returns a random identifier suitable for batches and other
// short-lived handles.
func NewIdentifier() string {
	return uuid.New().String()
}
