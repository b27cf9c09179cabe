package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns kind + ":" + the SHA-256 of the JSON encoding of parts.
// Struct fields encode in declaration order, so equal options give equal
// keys.
func hashKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// Options are plain values; a marshal failure is a programming error.
		panic("cache: unhashable key parts: " + err.Error())
	}
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Map hashes are computed with it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
