package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeQuestionText reduces question text to its comparable form:
// lowercased with runs of whitespace collapsed to single spaces. Two
// questions that differ only in casing or spacing hash identically.
func NormalizeQuestionText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// ContentHash returns the hex sha256 digest of the normalized text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(NormalizeQuestionText(text)))
	return hex.EncodeToString(sum[:])
}
