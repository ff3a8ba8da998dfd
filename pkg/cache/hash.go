package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GraphKey is the cache key of the graph served at baseURL. The URL is
// hashed so keys stay short and safe for every backend; trailing slashes
// are ignored.
func GraphKey(baseURL string) string {
	return "graph:" + Hash([]byte(strings.TrimRight(baseURL, "/")))
}
