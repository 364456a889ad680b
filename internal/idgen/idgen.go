package idgen

import (
	"strconv"

	"github.com/google/uuid"
)

// Generator produces unique record IDs. Repositories take one injected so
// tests can pin IDs deterministically.
type Generator interface {
	NewID() string
}

// UUID generates random v4 UUIDs.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates pref-1, pref-2, ... for tests.
type Sequence struct {
	Prefix string
	n      int
}

func (s *Sequence) NewID() string {
	s.n++
	return s.Prefix + "-" + strconv.Itoa(s.n)
}
