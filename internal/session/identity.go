package session

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/recipediary/internal/domain"
)

// LocalIdentity derives a stable identity from an email address, so that
// signing in again with the same email reaches the same recipes.
// When name is blank the local part of the email is used.
func LocalIdentity(email, name string) (domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return domain.Identity{}, domain.NewValidationError("email", "must be a valid email address")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = email[:at]
	}

	return domain.Identity{
		ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)),
		Email: email,
		Name:  name,
	}, nil
}
