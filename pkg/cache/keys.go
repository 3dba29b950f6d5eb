package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes the SHA-256 hash of data as a 64-character hex string. Cache
// keys and store lookups use it to identify graph content.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Keyer derives cache keys from graph content. The graphHash arguments are
// the [Hash] of a graph's canonical serialization.
type Keyer interface {
	// PlanarityKey names the cached planarity verdict of a graph.
	PlanarityKey(graphHash string) string

	// EmbeddingKey names the cached embedding of a graph.
	EmbeddingKey(graphHash string) string
}

// DefaultKeyer produces unscoped keys of the form kind:hash.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

func (*DefaultKeyer) PlanarityKey(graphHash string) string {
	return fmt.Sprintf("planarity:%s", graphHash)
}

func (*DefaultKeyer) EmbeddingKey(graphHash string) string {
	return fmt.Sprintf("embedding:%s", graphHash)
}

// ScopedKeyer wraps a Keyer with a prefix, isolating cache namespaces when
// one backend is shared by several deployments or tenants.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key. A nil
// inner keyer defaults to [NewDefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) PlanarityKey(graphHash string) string {
	return k.prefix + k.inner.PlanarityKey(graphHash)
}

func (k *ScopedKeyer) EmbeddingKey(graphHash string) string {
	return k.prefix + k.inner.EmbeddingKey(graphHash)
}
