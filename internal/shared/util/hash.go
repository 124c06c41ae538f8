package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns the hex-encoded SHA-256 checksum of a payload.
// Recorded as upload provenance alongside the extracted text.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
