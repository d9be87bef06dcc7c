// Package uuid generates the string identifiers used as primary keys.
package uuid

import (
	"strings"

	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7 based on the current timestamp.
// UUIDv7 is time-ordered and suitable for use as database primary keys.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to standard UUIDv4 if random generation fails
		return googleuuid.New().String()
	}
	return id.String()
}

// InviteCode returns a short, upper-case code suitable for sharing a group.
func InviteCode() string {
	raw := strings.ReplaceAll(googleuuid.New().String(), "-", "")
	return strings.ToUpper(raw[:8])
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
