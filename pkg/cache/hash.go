package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// FrameKeyOpts are the output options that change a frame's bytes.
type FrameKeyOpts struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Keyer derives cache keys.
type Keyer interface {
	// FrameKey returns the key of a frame rendered from a scene whose
	// exported geometry hashes to sceneHash.
	FrameKey(sceneHash string, opts FrameKeyOpts) string
}

// DefaultKeyer derives unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FrameKey implements [Keyer].
func (DefaultKeyer) FrameKey(sceneHash string, opts FrameKeyOpts) string {
	return hashKey("frame", sceneHash, opts)
}
