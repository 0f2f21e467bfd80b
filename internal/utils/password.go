package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of the plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword compares a bcrypt hash with the plaintext password.
// A malformed hash is treated as a mismatch, never as an error.
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
