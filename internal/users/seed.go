package users

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/luxemarket/storefront-backend/pkg/security"
)

//go:embed seed_users.json
var seedUsers []byte

type seedCredential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserID   string `json:"user_id"`
}

type seedFile struct {
	Users       []User           `json:"users"`
	Credentials []seedCredential `json:"credentials"`
}

// Seeded returns a store loaded with the embedded user dataset. The seed
// carries plaintext demo passwords; they are hashed here so the login path
// always verifies against Argon2id.
func Seeded() (*Store, error) {
	var seed seedFile
	if err := json.Unmarshal(seedUsers, &seed); err != nil {
		return nil, fmt.Errorf("decode user seed: %w", err)
	}

	byID := map[string]struct{}{}
	for _, u := range seed.Users {
		if u.ID == "" {
			return nil, fmt.Errorf("user seed contains record without id")
		}
		if !u.Role.IsValid() {
			return nil, fmt.Errorf("user %s has invalid role %q", u.ID, u.Role)
		}
		byID[u.ID] = struct{}{}
	}

	credentials := make([]Credential, 0, len(seed.Credentials))
	for _, c := range seed.Credentials {
		if _, ok := byID[c.UserID]; !ok {
			return nil, fmt.Errorf("credential %s references unknown user %s", c.Email, c.UserID)
		}
		hash, err := security.HashPassword(c.Password)
		if err != nil {
			return nil, fmt.Errorf("hash credential for %s: %w", c.Email, err)
		}
		credentials = append(credentials, Credential{
			Email:        c.Email,
			UserID:       c.UserID,
			PasswordHash: hash,
		})
	}

	return NewStore(seed.Users, credentials), nil
}
