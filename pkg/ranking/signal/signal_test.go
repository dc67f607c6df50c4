package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByNameRoundTrip(t *testing.T) {
	for _, s := range All() {
		name := s.String()
		got, ok := ByName(name)
		require.True(t, ok, "signal %v should resolve by name", s)
		assert.Equal(t, s, got)
	}
}

func TestParseCoefficientsUnknownName(t *testing.T) {
	_, err := ParseCoefficients(map[string]float64{"not_a_real_signal": 1.0})
	assert.Error(t, err)
}

func TestParseCoefficientsKnownNames(t *testing.T) {
	got, err := ParseCoefficients(map[string]float64{"bm25_title": 5.0, "fetch_time_ms": 0.5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got[BM25Title])
	assert.Equal(t, 0.5, got[FetchTimeMS])
}

func TestNewOrderPrunesZeroCoefficients(t *testing.T) {
	resolve := func(s Signal) float64 {
		if s == BM25Body {
			return 0
		}
		return s.DefaultCoefficient()
	}
	o := NewOrder(resolve)
	for _, s := range o.Active() {
		assert.NotEqual(t, BM25Body, s)
	}
}

func TestNewOrderGroupsTextFieldsOnce(t *testing.T) {
	o := NewOrder(func(s Signal) float64 { return s.DefaultCoefficient() })
	seen := make(map[TextField]int)
	for _, f := range o.TextFields() {
		seen[f]++
	}
	for field, count := range seen {
		assert.Equal(t, 1, count, "field %v listed more than once", field)
	}
	assert.True(t, o.HasTextual())
}

func TestNewOrderNoTextualShortCircuit(t *testing.T) {
	o := NewOrder(func(s Signal) float64 {
		if s.Kind() == KindTextual {
			return 0
		}
		return s.DefaultCoefficient()
	})
	assert.False(t, o.HasTextual())
	assert.Empty(t, o.TextFields())
}

func TestScoreContribution(t *testing.T) {
	sc := Score{Coefficient: 2.0, Value: 3.0}
	assert.Equal(t, 6.0, sc.Contribution())
}
