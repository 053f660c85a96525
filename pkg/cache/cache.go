// Package cache stores rendered artifacts, such as SVG exports, keyed by a
// hash of their input so identical workspaces are rendered once.
//
// Two implementations are provided:
//   - [FileCache]: entries live as files under a directory, for the CLI
//   - [NullCache]: never stores anything, for --no-cache and tests
//
// Keys come from [Key]:
//
//	key := cache.Key("svg", []byte(dot))
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry for key. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key returns "kind:<sha256 of input>".
func Key(kind string, input []byte) string {
	return kind + ":" + Hash(input)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
