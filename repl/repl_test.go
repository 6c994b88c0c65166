package repl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"hof/repl"
)

func TestStartEvaluatesEachLine(t *testing.T) {
	in := strings.NewReader("PI\n")
	var out strings.Builder

	repl.Start(in, &out, false)

	got := out.String()
	assert.Contains(t, got, repl.PROMPT)
	assert.Contains(t, got, "I")
	assert.Contains(t, got, "=> I")
}

func TestStartSkipsBlankLines(t *testing.T) {
	in := strings.NewReader("\n   \n")
	var out strings.Builder

	repl.Start(in, &out, false)
	assert.NotContains(t, out.String(), "=>")
}

func TestStartSharesCacheAcrossLines(t *testing.T) {
	// The same program twice: the second line reduces against the memo
	// entries the first line populated, and must print the same output.
	in := strings.NewReader("AASAASAKSKIPI\nAASAASAKSKIPI\n")
	var out strings.Builder

	repl.Start(in, &out, false)
	assert.Equal(t, 2, strings.Count(out.String(), "II"))
}
