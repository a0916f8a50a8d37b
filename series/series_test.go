package series_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolprob/series"
)

func sample() *series.Series {
	s := series.New([]string{"A", "B"}, 3)
	s.Values["A"] = []float64{0.5, 1, 1}
	s.Values["B"] = []float64{0.5, 0.25, 0}
	return s
}

// TestNew_ZeroFilled checks shape and zero values of a fresh series.
func TestNew_ZeroFilled(t *testing.T) {
	s := series.New([]string{"X", "Y"}, 4)
	assert.Equal(t, 4, s.Steps())
	assert.Equal(t, []float64{0, 0, 0, 0}, s.Values["Y"])

	empty := series.New(nil, 4)
	assert.Equal(t, 0, empty.Steps())
}

// TestAccessors covers At, Set and Snapshot including error paths.
func TestAccessors(t *testing.T) {
	s := sample()

	p, err := s.At("B", 1)
	require.NoError(t, err)
	assert.Equal(t, 0.25, p)

	require.NoError(t, s.Set("B", 1, 0.75))
	p, _ = s.At("B", 1)
	assert.Equal(t, 0.75, p)

	_, err = s.At("Z", 0)
	assert.ErrorIs(t, err, series.ErrUnknownNode)
	_, err = s.At("A", 3)
	assert.ErrorIs(t, err, series.ErrStepOutOfRange)
	assert.ErrorIs(t, s.Set("A", -1, 0), series.ErrStepOutOfRange)

	snap, err := s.Snapshot(2)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 1, "B": 0}, snap)
	_, err = s.Snapshot(9)
	assert.ErrorIs(t, err, series.ErrStepOutOfRange)
}

// TestEntropy checks the mean binary entropy per step.
func TestEntropy(t *testing.T) {
	s := sample()

	h0, err := s.Entropy(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, h0, 1e-12, "two fair coins carry one bit each")

	h1, err := s.Entropy(1)
	require.NoError(t, err)
	want := (0 + (-0.25*math.Log2(0.25) - 0.75*math.Log2(0.75))) / 2
	assert.InDelta(t, want, h1, 1e-12)

	h2, err := s.Entropy(2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h2, "decided nodes carry no entropy")
}

// TestMaxAbsDiff covers the comparison and shape checks.
func TestMaxAbsDiff(t *testing.T) {
	a, b := sample(), sample()
	d, err := a.MaxAbsDiff(b)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	b.Values["B"][1] = 0.5
	d, err = a.MaxAbsDiff(b)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, d, 1e-15)

	_, err = a.MaxAbsDiff(series.New([]string{"A"}, 3))
	assert.ErrorIs(t, err, series.ErrShapeMismatch)
	_, err = a.MaxAbsDiff(series.New([]string{"A", "B"}, 2))
	assert.ErrorIs(t, err, series.ErrShapeMismatch)
}

// TestValidate rejects probabilities outside [0,1] and ragged sequences.
func TestValidate(t *testing.T) {
	s := sample()
	assert.NoError(t, s.Validate())

	s.Values["A"][1] = 1.5
	assert.ErrorIs(t, s.Validate(), series.ErrOutOfRange)

	s = sample()
	s.Values["A"][0] = math.NaN()
	assert.ErrorIs(t, s.Validate(), series.ErrOutOfRange)

	s = sample()
	s.Values["B"] = s.Values["B"][:2]
	assert.ErrorIs(t, s.Validate(), series.ErrShapeMismatch)

	s = sample()
	delete(s.Values, "B")
	assert.ErrorIs(t, s.Validate(), series.ErrUnknownNode)
}

// TestJSON_Record checks the plot-script record keys and a round trip.
func TestJSON_Record(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sample().WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"state_variables"`)
	assert.Contains(t, buf.String(), `"simulation"`)

	back, err := series.ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample(), back)

	_, err = series.ReadJSON(strings.NewReader(`{"state_variables":["A"],"simulation":{"A":[2]}}`))
	assert.ErrorIs(t, err, series.ErrOutOfRange)
	_, err = series.ReadJSON(strings.NewReader(`not json`))
	assert.Error(t, err)
}

// TestYAML_Record checks that the YAML form carries the same record.
func TestYAML_Record(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sample().WriteYAML(&buf))

	var back series.Series
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *sample(), back)
}
