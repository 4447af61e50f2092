package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HTTPKey builds the cache key for a response from namespace (e.g. "tse:").
func HTTPKey(namespace, url string) string {
	return "http:" + namespace + ":" + url
}
