package computer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

func TestLoadLinearModel_ResolvesKnownSignalNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bm25_title": 4.5, "page_rank": 0.2}`), 0o644))

	model, err := LoadLinearModel(path)
	require.NoError(t, err)

	w, ok := model.Weight(signal.BM25Title)
	require.True(t, ok)
	assert.Equal(t, 4.5, w)

	w, ok = model.Weight(signal.PageRank)
	require.True(t, ok)
	assert.Equal(t, 0.2, w)

	_, ok = model.Weight(signal.BM25Body)
	assert.False(t, ok)
}

func TestLoadLinearModel_UnknownSignalNameRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not_a_real_signal": 1.0}`), 0o644))

	_, err := LoadLinearModel(path)
	assert.Error(t, err)
}

func TestLoadLinearModel_MissingFile(t *testing.T) {
	_, err := LoadLinearModel(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestStaticLinearModel_WeightReportsPresence(t *testing.T) {
	m := StaticLinearModel{signal.PageRank: 3.0}

	w, ok := m.Weight(signal.PageRank)
	assert.True(t, ok)
	assert.Equal(t, 3.0, w)

	_, ok = m.Weight(signal.BM25Title)
	assert.False(t, ok)
}
