package domain

import (
	"context"
	"time"
)

// GitSource resolves context from a repository's object store. All three
// methods read blob content from the persistent object store, never from
// the live working directory.
type GitSource interface {
	// StagedDiff returns the textual diff between the index and the last
	// commit (or the empty tree when no commit exists). An empty string
	// means nothing is staged and is distinct from an error.
	StagedDiff() (string, error)
	// StagedContent returns the staged-version content of every
	// non-conflicted index entry
	StagedContent() (*ContextMap, error)
	// TrackedContent returns the content of all files recorded in the
	// most recent commit; empty when no commit exists
	TrackedContent() (*ContextMap, error)
}

// ArchiveSource loads context from an uploaded archive
type ArchiveSource interface {
	// Load extracts the archive into a scratch directory, walks the
	// result applying inclusion/exclusion rules, and reclaims the
	// scratch directory on every exit path
	Load(archivePath string) (*ContextMap, error)
}

// LLMProvider defines the interface for LLM interactions
type LLMProvider interface {
	// Name returns the provider name (openai, anthropic, google)
	Name() string
	// Complete sends a request and returns the response
	Complete(ctx context.Context, req *LLMRequest) (*LLMResponse, error)
	// Close releases resources
	Close() error
}

// Cache defines the interface for response caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}
