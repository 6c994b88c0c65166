package lambda_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hof/internal/errors"
	"hof/internal/translate/lambda"
)

func TestTranslateIdentity(t *testing.T) {
	// λx.x -> I
	out, err := lambda.Translate("λx.x")
	require.NoError(t, err)
	assert.Equal(t, "I", out)
}

func TestTranslateConstant(t *testing.T) {
	// λx.y, x not free in body -> K y
	out, err := lambda.Translate("λx.y")
	require.NoError(t, err)
	assert.Equal(t, "AKy", out)
}

func TestTranslateEtaReduction(t *testing.T) {
	// λx.(f x), x not free in f -> f (here literally the variable f)
	out, err := lambda.Translate("λx.(fx)")
	require.NoError(t, err)
	assert.Equal(t, "f", out)
}

func TestTranslateApplicationPushesIntoBothSides(t *testing.T) {
	out, err := lambda.Translate("(xy)")
	require.NoError(t, err)
	assert.Equal(t, "Axy", out)
}

func TestTranslateSubstitutionToken(t *testing.T) {
	out, err := lambda.Translate("{foo}")
	require.NoError(t, err)
	assert.Equal(t, "foo", out)
}

func TestTranslateNestedAbstraction(t *testing.T) {
	// λx.λy.x -> K (x not free in λy.x is false since x IS free, so rule 5
	// reduces the inner abstraction first: λy.x -> K x (y not free in x),
	// then λx.(K x) η-reduces to K, since x does not occur in K).
	out, err := lambda.Translate("λx.λy.x")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestTranslateMalformedInputReturnsTranslateError(t *testing.T) {
	_, err := lambda.Translate("λx.")
	require.Error(t, err)
	var te *errors.TranslateError
	require.ErrorAs(t, err, &te)
}
