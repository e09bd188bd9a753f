package hierarchy

import (
	"testing"

	"github.com/schollz/jasstension/internal/theory"
	"github.com/schollz/jasstension/internal/tis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensionLastShortCircuitsBelowTwo(t *testing.T) {
	h, err := TensionLast(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h)

	h, err = TensionLast([]tis.Vector{{}}, []Label{LabelTonic}, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, h)
}

func TestTensionLastRejectsMismatchedLengths(t *testing.T) {
	_, err := TensionLast([]tis.Vector{{}, {}}, []Label{LabelTonic}, []float64{0, 0})
	require.Error(t, err)
}

func TestTensionLastDominantResolutionToTonicIsLow(t *testing.T) {
	protos, err := theory.FunctionPrototypes("C", theory.Major)
	require.NoError(t, err)

	tList := []tis.Vector{protos[theory.Tonic], protos[theory.Subdominant], protos[theory.Dominant], protos[theory.Tonic]}
	labels := []Label{LabelTonic, LabelSubdominant, LabelDominant, LabelTonic}
	dists := []float64{0, 0.1, 0.1, 0}

	h, err := TensionLast(tList, labels, dists)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, h, 0.0)
	assert.InDelta(t, 0.0, h, 1e-9)
}

func TestFunctionLabelPicksMinAngle(t *testing.T) {
	protos, err := theory.FunctionPrototypes("C", theory.Major)
	require.NoError(t, err)
	got := FunctionLabel(protos[theory.Tonic], protos)
	assert.Equal(t, LabelTonic, got)

	got = FunctionLabel(protos[theory.Dominant], protos)
	assert.Equal(t, LabelDominant, got)
}
