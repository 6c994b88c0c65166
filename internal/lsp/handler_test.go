package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hof/internal/lsp"
)

func TestDiagnoseEmptyProgramHasNoDiagnostics(t *testing.T) {
	assert.Empty(t, lsp.Diagnose("a.hof", ""))
}

func TestDiagnoseWellFormedHofProgram(t *testing.T) {
	assert.Empty(t, lsp.Diagnose("a.hof", "PI"))
}

func TestDiagnoseRecursionBudgetExceeded(t *testing.T) {
	diags := lsp.Diagnose("omega.hof", "SIIAASII")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "recursion")
}

func TestDiagnoseMalformedSkiFile(t *testing.T) {
	diags := lsp.Diagnose("prog.ski", "(S")
	require.Len(t, diags, 1)
	assert.NotEmpty(t, diags[0].Message)
}

func TestDiagnoseMalformedLambdaFile(t *testing.T) {
	diags := lsp.Diagnose("prog.lambda", "λx.")
	require.Len(t, diags, 1)
	assert.NotEmpty(t, diags[0].Message)
}

func TestDiagnoseWellFormedSkiFile(t *testing.T) {
	assert.Empty(t, lsp.Diagnose("prog.ski", "(SII)"))
}

func TestNewHandlerIsReady(t *testing.T) {
	h := lsp.NewHandler()
	require.NotNil(t, h)
}
