// Package digest provides the hashing support for the blockchain. All hashes
// in the system are sha256 digests represented as 64 hex characters without
// a prefix so the difficulty predicate can be read directly off the string.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ZeroHash represents a hash code of zeros. It is the parent hash of the
// genesis block.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// HashLen is the number of characters in any hash produced by this package.
const HashLen = 64

// Hash returns a unique string for the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// IsSolved checks the hash to make sure it complies with the difficulty
// rules. We need to match a difficulty number of 0's.
func IsSolved(difficulty uint16, hash string) bool {
	const match = ZeroHash

	if len(hash) != HashLen {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}
