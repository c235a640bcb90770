package board

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces task ids. Implementations should rarely repeat
// themselves; the board re-draws when an id is already in use.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// NewID calls f.
func (f IDGeneratorFunc) NewID() string {
	return f()
}

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Sequence issues ids from a monotonic counter, e.g. "T6", "T7".
// It is safe for concurrent use.
type Sequence struct {
	prefix string
	next   atomic.Int64
}

// NewSequence returns a Sequence whose first id is prefix followed by
// start+1.
func NewSequence(prefix string, start int64) *Sequence {
	s := &Sequence{prefix: prefix}
	s.next.Store(start)
	return s
}

// NewID returns the next id in the sequence.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s%d", s.prefix, s.next.Add(1))
}

// IDStyle names an id generator in configuration.
type IDStyle string

const (
	IDStyleUUID     IDStyle = "uuid"
	IDStyleSequence IDStyle = "sequence"
)

// NewIDGenerator builds the generator for style. Sequence generators start
// after start so they do not trip over seeded ids.
func NewIDGenerator(style, prefix string, start int64) (IDGenerator, error) {
	switch IDStyle(strings.ToLower(strings.TrimSpace(style))) {
	case "", IDStyleUUID:
		return UUIDGenerator{}, nil
	case IDStyleSequence, "seq", "counter":
		return NewSequence(prefix, start), nil
	}
	return nil, fmt.Errorf("unknown id style %q, must be one of: uuid, sequence", style)
}
