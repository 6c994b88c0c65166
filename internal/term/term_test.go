package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hof/internal/term"
)

func TestFingerprintCombinators(t *testing.T) {
	s := term.NewSingletons(nil)
	assert.Equal(t, "I", s.I.Fingerprint())
	assert.Equal(t, "K", s.K.Fingerprint())
	assert.Equal(t, "S", s.S.Fingerprint())
	assert.Equal(t, "B", s.B.Fingerprint())
	assert.Equal(t, "C", s.C.Fingerprint())
	assert.Equal(t, "P", s.P.Fingerprint())
	assert.Equal(t, "R", s.R.Fingerprint())
}

func TestFingerprintVar(t *testing.T) {
	assert.Equal(t, "x", term.NewVar('x').Fingerprint())
}

func TestFingerprintApplication(t *testing.T) {
	s := term.NewSingletons(nil)
	a := term.NewA()
	a.AddChild(s.I)
	a.AddChild(s.K)
	require.True(t, a.IsWellFormed())
	assert.Equal(t, "AIK", a.Fingerprint())
}

func TestFingerprintThunkHasNoLeadingA(t *testing.T) {
	s := term.NewSingletons(nil)
	thunk := term.NewThunk(s.I, s.K)
	assert.Equal(t, "IK", thunk.Fingerprint())
}

func TestFingerprintCapture(t *testing.T) {
	s := term.NewSingletons(nil)
	cap := term.NewCapture(term.K, 1, s.I)
	assert.Equal(t, "KI", cap.Fingerprint())
}

func TestFingerprintApplied(t *testing.T) {
	s := term.NewSingletons(nil)
	assert.Equal(t, "IK", s.I.FingerprintApplied(s.K))
}

func TestAddChildDescendsIntoIncompleteSubtree(t *testing.T) {
	s := term.NewSingletons(nil)
	outer := term.NewA()
	inner := term.NewA()
	outer.AddChild(inner)
	outer.AddChild(s.I)

	// outer.Left is inner and inner is still incomplete, so AddChild must
	// have descended into inner rather than filling outer.Right directly.
	require.Equal(t, inner, outer.Left)
	require.Equal(t, s.I, inner.Left)
	require.False(t, outer.IsWellFormed())

	inner.AddChild(s.K)
	require.False(t, outer.IsWellFormed(), "outer.Right is still empty")

	// inner is now complete, so the next child fills outer.Right.
	outer.AddChild(s.S)
	require.True(t, outer.IsWellFormed())
	assert.Equal(t, "AAIKS", outer.Fingerprint())
}

func TestIsWellFormedRequiresBothChildrenRecursively(t *testing.T) {
	s := term.NewSingletons(nil)
	a := term.NewA()
	assert.False(t, a.IsWellFormed())

	a.AddChild(s.I)
	assert.False(t, a.IsWellFormed())

	a.AddChild(s.K)
	assert.True(t, a.IsWellFormed())
}

func TestAddChildPanicsOnWellFormedReceiver(t *testing.T) {
	s := term.NewSingletons(nil)
	a := term.NewA()
	a.AddChild(s.I)
	a.AddChild(s.K)
	require.True(t, a.IsWellFormed())

	assert.Panics(t, func() { a.AddChild(s.I) })
}

func TestDoNotCacheSpineHead(t *testing.T) {
	s := term.NewSingletons(nil)

	rApp := term.NewA()
	rApp.AddChild(s.R)
	rApp.AddChild(s.I)
	assert.True(t, rApp.DoNotCache())

	pApp := term.NewA()
	pApp.AddChild(s.P)
	pApp.AddChild(s.I)
	assert.True(t, pApp.DoNotCache())

	iApp := term.NewA()
	iApp.AddChild(s.I)
	iApp.AddChild(s.K)
	assert.False(t, iApp.DoNotCache())

	// Nested spine: A(A(R,I),K) — the spine head is still R.
	outer := term.NewA()
	outer.AddChild(rApp)
	outer.AddChild(s.K)
	assert.True(t, outer.DoNotCache())
}

func TestSingletonsAreDistinctPerInstance(t *testing.T) {
	a := term.NewSingletons(nil)
	b := term.NewSingletons(nil)
	assert.NotSame(t, a.I, b.I, "each Interpreter owns its own singleton set")
}

func TestCaptureAppendAndSaturation(t *testing.T) {
	s := term.NewSingletons(nil)
	cap := term.NewCapture(term.S, 2, s.I)
	assert.False(t, cap.IsSaturated())

	cap.AppendArg(s.K)
	assert.True(t, cap.IsSaturated())
}

func TestAppendArgPanicsOnOverfill(t *testing.T) {
	s := term.NewSingletons(nil)
	cap := term.NewCapture(term.K, 1, s.I)
	require.True(t, cap.IsSaturated())
	assert.Panics(t, func() { cap.AppendArg(s.K) })
}

func TestDisplayShowsSubscriptForCapture(t *testing.T) {
	s := term.NewSingletons(nil)
	cap := term.NewCapture(term.S, 2, s.I)
	assert.Equal(t, "S₂I", cap.Display())
}
