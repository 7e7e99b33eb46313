// Package id provides ULID generation for request and solve identifiers.
//
// IDs are lexicographically sortable ULIDs with a short type prefix
// (req_*, solve_*) so they read well in logs and response headers.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// RequestID identifies an API request
type RequestID string

// SolveID identifies one solve inside a batch
type SolveID string

const (
	RequestPrefix = "req"
	SolvePrefix   = "solve"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand with monotonic
// ordering inside a millisecond
func NewGenerator() *Generator {
	return &Generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source.
// Useful for testing with deterministic entropy
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// GenerateBatch generates count ULIDs sharing one timestamp
func (g *Generator) GenerateBatch(count int) []ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	ids := make([]ulid.ULID, count)
	now := ulid.Timestamp(time.Now())
	for i := range ids {
		ids[i] = ulid.MustNew(now, g.entropy)
	}
	return ids
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewSolveIDs generates n solve IDs for a batch
func NewSolveIDs(n int) []SolveID {
	raw := Default().GenerateBatch(n)
	ids := make([]SolveID, n)
	for i, u := range raw {
		ids[i] = SolveID(SolvePrefix + "_" + u.String())
	}
	return ids
}

func (id RequestID) String() string { return string(id) }
func (id SolveID) String() string   { return string(id) }

// IsValid checks if an ID string is a valid ULID, with or without prefix
func IsValid(id string) bool {
	_, err := Parse(id)
	return err == nil
}

// IsValidRequestID accepts an ID of ours or a UUID supplied by a client
func IsValidRequestID(id string) bool {
	if IsValid(id) {
		return true
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// Parse parses a ULID string, stripping a type prefix if present
func Parse(id string) (ulid.ULID, error) {
	if i := strings.LastIndexByte(id, '_'); i >= 0 {
		id = id[i+1:]
	}
	return ulid.Parse(id)
}
