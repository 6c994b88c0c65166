package ski_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hof/internal/errors"
	"hof/internal/translate/ski"
)

func TestTranslateAtomicCombinator(t *testing.T) {
	out, err := ski.Translate("S")
	require.NoError(t, err)
	assert.Equal(t, "S", out)
}

func TestTranslateSimpleApplication(t *testing.T) {
	// (SII) is one parenthesized 3-term application: two leading "A"s
	// (one fewer than the term count) followed by each term in order.
	out, err := ski.Translate("(SII)")
	require.NoError(t, err)
	assert.Equal(t, "AASII", out)
}

func TestTranslateNestedApplication(t *testing.T) {
	// Top-level terms concatenate with no inserted "A": Hof's own
	// left-associative juxtaposition at the top level does the work of
	// applying "S" to the translated "(K(SII))".
	out, err := ski.Translate("S(K(SII))")
	require.NoError(t, err)
	assert.Equal(t, "SAKAASII", out)
}

func TestTranslateLowercaseAtomsUppercase(t *testing.T) {
	out, err := ski.Translate("(sii)")
	require.NoError(t, err)
	assert.Equal(t, "AASII", out)
}

func TestTranslateSubstitutionToken(t *testing.T) {
	out, err := ski.Translate("({foo}I)")
	require.NoError(t, err)
	assert.Equal(t, "AfooI", out)
}

func TestTranslatePassthroughVariable(t *testing.T) {
	out, err := ski.Translate("(xy)")
	require.NoError(t, err)
	assert.Equal(t, "Axy", out)
}

func TestTranslateMalformedInputReturnsTranslateError(t *testing.T) {
	_, err := ski.Translate("(S")
	require.Error(t, err)
	var te *errors.TranslateError
	require.ErrorAs(t, err, &te)
}
