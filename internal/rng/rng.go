// Package rng provides the fair Bernoulli source behind the R combinator.
package rng

import "math/rand/v2"

// Source draws fair Boolean choices. The zero value is not ready for use;
// construct with New or NewSeeded.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded from the runtime's entropy source.
func New() *Source {
	return &Source{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded returns a Source with a fixed, reproducible seed, required by
// any test asserting on R's output, since R is the one non-deterministic
// construct in the language.
func NewSeeded(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed))}
}

// Bool draws a fair Boolean: true and false are equally likely.
func (s *Source) Bool() bool {
	return s.r.IntN(2) == 0
}
