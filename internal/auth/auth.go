package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credential holds the bcrypt hash of the shared sync password. The remote
// write endpoint requires it; reads are open.
type Credential struct {
	hash []byte
}

// NewCredential hashes the plaintext sync password once at startup.
func NewCredential(password string) (*Credential, error) {
	if password == "" {
		return nil, fmt.Errorf("sync password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing sync password: %w", err)
	}
	return &Credential{hash: hash}, nil
}

// Check verifies a caller-supplied credential against the stored hash.
func (c *Credential) Check(provided string) bool {
	return bcrypt.CompareHashAndPassword(c.hash, []byte(provided)) == nil
}

// BearerToken extracts the credential from an Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return "", false
	}
	return token, true
}

// RequireCredential guards a write handler. Failures are reported in the
// API's envelope shape, never as a bare status text.
func RequireCredential(cred *Credential, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			writeUnauthorized(w, "missing bearer credential")
			return
		}
		if !cred.Check(token) {
			writeUnauthorized(w, "invalid credential")
			return
		}
		next(w, r)
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
