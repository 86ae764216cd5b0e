// Package identity derives the opaque answer identifiers sent to clients in
// place of answer positions.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Size is the length in characters of an ID.
const Size = sha256.Size * 2

// ID is the lowercase hex SHA-256 digest of an answer's text.
type ID string

// Of returns the identity of an answer text. Equal texts always produce
// equal IDs.
func Of(text string) ID {
	sum := sha256.Sum256([]byte(text))
	return ID(hex.EncodeToString(sum[:]))
}

// Valid reports whether s has the shape of an ID: Size lowercase hex digits.
// It does not say whether s belongs to any particular problem.
func Valid(s string) bool {
	if len(s) != Size {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// String returns the hex form.
func (id ID) String() string { return string(id) }
