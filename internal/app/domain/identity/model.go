package identity

import "time"

// Identity is a registered user. Email is unique across all identities.
type Identity struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name,omitempty" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Profile is the public view of an identity returned alongside a token.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Profile strips the credential fields.
func (i Identity) Profile() Profile {
	return Profile{ID: i.ID, Name: i.Name, Email: i.Email}
}
