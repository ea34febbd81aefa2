package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Fingerprint identifies a response body derived from one ontology
// generation. Equal bodies from different generations fingerprint
// differently, so a client-side copy never outlives an axiom change.
// The result is 16 hex characters.
func Fingerprint(generation uint64, body []byte) string {
	h := sha256.New()
	var gen [8]byte
	binary.BigEndian.PutUint64(gen[:], generation)
	h.Write(gen[:])
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil)[:8])
}
