package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no user matches, so a failed lookup
// costs about as much as a wrong password.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8eK"

// HashPassword creates a bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	// default cost is 10, raise it here if hashing gets too cheap
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided plaintext password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword))
}

// BurnPassword runs a comparison that always fails.
func BurnPassword(providedPassword string) {
	_ = VerifyPassword(dummyHash, providedPassword)
}
