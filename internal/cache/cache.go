package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching serialized claim results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResultKey derives a cache key from the document text and the extraction
// mode. Mode is part of the key so a pattern-mode result is never served
// when an AI credential has since been configured, and vice versa.
func ResultKey(documentText, mode string) string {
	hash := sha256.Sum256([]byte(mode + "\x00" + documentText))
	return "fnoltriage:v1:" + hex.EncodeToString(hash[:])
}
