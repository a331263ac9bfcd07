package security

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes plaintext using bcrypt. The random salt means the same
// input yields a different digest on every call.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches the stored digest.
// Malformed digests simply return false.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
