package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hof/internal/rng"
)

func TestSeededSourceIsReproducible(t *testing.T) {
	a := rng.NewSeeded(42)
	b := rng.NewSeeded(42)

	for i := 0; i < 200; i++ {
		assert.Equal(t, a.Bool(), b.Bool())
	}
}

func TestBoolDrawsBothValues(t *testing.T) {
	s := rng.NewSeeded(1)
	seenTrue, seenFalse := false, false
	for i := 0; i < 200 && !(seenTrue && seenFalse); i++ {
		if s.Bool() {
			seenTrue = true
		} else {
			seenFalse = true
		}
	}
	assert.True(t, seenTrue)
	assert.True(t, seenFalse)
}
