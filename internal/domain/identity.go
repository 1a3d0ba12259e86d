package domain

import "github.com/google/uuid"

// Identity is the signed-in user as exposed by the session boundary.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name,omitempty"`
}
