package env

import (
	"os"
	"strings"
)

// Get reads key from the environment with surrounding whitespace trimmed.
// Unset or blank values fall back.
func Get(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
