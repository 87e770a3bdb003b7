// Package common holds small helpers shared across commands.
package common

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// NormalizeSlug lower-cases and trims a requested slug and collapses
// whitespace runs to single hyphens, so "  Teeth Whitening " and
// "teeth-whitening" compare equal.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

// Titleize turns a slug into a display name: "teeth-whitening" becomes
// "Teeth Whitening". Used only for synthesized fallback content where no
// catalog display name is available.
func Titleize(slug string) string {
	parts := strings.Split(NormalizeSlug(slug), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// ContentHash returns the hex SHA-256 of a payload, used to de-duplicate
// snapshot writes.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}
