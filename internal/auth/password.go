package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Password holds a bcrypt hash and, right after Set, the plaintext it came from.
type Password struct {
	Plaintext *string
	Hash      string
}

// Set hashes a plaintext password.
func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

// Matches reports whether plaintextPassword hashes to p.Hash.
func (p *Password) Matches(plaintextPassword string) (bool, error) {
	if p.Hash == "" {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
