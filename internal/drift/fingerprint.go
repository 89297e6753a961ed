package drift

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Fingerprint derives the cache key for a drift check from the scanned code
// content, the existing document content, and the model identifier.
//
// Each input is preceded by its 8-byte big-endian length before hashing, so
// the encoding is unambiguous: ("ab", "c") and ("a", "bc") hash differently
// even though their concatenations are identical.
func Fingerprint(codeContent, docContent, modelID string) string {
	h := sha256.New()
	for _, part := range []string{codeContent, docContent, modelID} {
		var size [8]byte
		binary.BigEndian.PutUint64(size[:], uint64(len(part)))
		h.Write(size[:])
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}
