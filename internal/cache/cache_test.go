package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hof/internal/cache"
	"hof/internal/term"
)

func TestInsertAndResult(t *testing.T) {
	c := cache.New()
	s := term.NewSingletons(nil)

	assert.Nil(t, c.Result("IK"))
	c.Insert("IK", s.I)
	assert.Same(t, s.I, c.Result("IK"))
}

func TestInsertNoopWhenKeyMatchesOwnFingerprint(t *testing.T) {
	c := cache.New()
	s := term.NewSingletons(nil)

	c.Insert(s.I.Fingerprint(), s.I)
	assert.Equal(t, 0, c.Len())
}

func TestInsertNoopWhenKeyAlreadyPresent(t *testing.T) {
	c := cache.New()
	s := term.NewSingletons(nil)

	c.Insert("x", s.I)
	c.Insert("x", s.K)
	assert.Same(t, s.I, c.Result("x"))
}

// TestTransitiveCollapse: after Insert(a, b) and Insert(c, a), Result(c)
// must return b, not a.
func TestTransitiveCollapse(t *testing.T) {
	c := cache.New()
	s := term.NewSingletons(nil)

	a := term.NewVar('a')
	b := s.I

	c.Insert(a.Fingerprint(), b)
	c.Insert("c", a)

	assert.Same(t, b, c.Result("c"))
}

func TestResultAbsent(t *testing.T) {
	c := cache.New()
	assert.Nil(t, c.Result("nope"))
}
