package users

import (
	"github.com/luxemarket/storefront-backend/pkg/enums"
	"github.com/luxemarket/storefront-backend/pkg/types"
)

// User is a storefront account record.
type User struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      enums.UserRole  `json:"role"`
	Addresses []types.Address `json:"addresses"`
}

// DefaultAddress returns the first address flagged as default. The data model
// does not stop multiple defaults; first match wins.
func (u User) DefaultAddress() (types.Address, bool) {
	for _, addr := range u.Addresses {
		if addr.IsDefault {
			return addr, true
		}
	}
	return types.Address{}, false
}

// Credential pairs a login email with the account it unlocks. The password is
// stored as an Argon2id hash even though these are demo fixtures.
type Credential struct {
	Email        string
	UserID       string
	PasswordHash string
}

// Store holds the seeded user records and mock credentials, read-only after
// construction.
type Store struct {
	users       []User
	byID        map[string]int
	credentials map[string]Credential
}

// NewStore builds a user store over the given records and credentials.
func NewStore(users []User, credentials []Credential) *Store {
	owned := make([]User, len(users))
	copy(owned, users)

	byID := make(map[string]int, len(owned))
	for i, u := range owned {
		byID[u.ID] = i
	}
	creds := make(map[string]Credential, len(credentials))
	for _, c := range credentials {
		creds[c.Email] = c
	}
	return &Store{users: owned, byID: byID, credentials: creds}
}

// FindByID returns the user with the given identifier.
func (s *Store) FindByID(id string) (User, bool) {
	if i, ok := s.byID[id]; ok {
		return s.users[i], true
	}
	return User{}, false
}

// FindCredential returns the mock credential registered for the login email.
func (s *Store) FindCredential(email string) (Credential, bool) {
	c, ok := s.credentials[email]
	return c, ok
}

// List returns a copy of all seeded users.
func (s *Store) List() []User {
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}
