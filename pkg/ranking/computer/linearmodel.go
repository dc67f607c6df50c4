package computer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

// StaticLinearModel is a fixed signal-to-weight table loaded once from
// disk. It implements LinearModel.
type StaticLinearModel map[signal.Signal]float64

// Weight implements LinearModel.
func (m StaticLinearModel) Weight(s signal.Signal) (float64, bool) {
	v, ok := m[s]
	return v, ok
}

// LoadLinearModel reads a JSON object mapping signal names (as returned by
// Signal.String, e.g. "bm25_title") to trained weights — the same shape
// internal/config.SignalsConfig.Coefficients uses for query-time overrides,
// but persisted as a standalone trained-model file rather than inlined into
// the query or the static config.
func LoadLinearModel(path string) (LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read linear model file: %w", err)
	}

	var named map[string]float64
	if err := json.Unmarshal(data, &named); err != nil {
		return nil, fmt.Errorf("parse linear model file: %w", err)
	}

	weights, err := signal.ParseCoefficients(named)
	if err != nil {
		return nil, fmt.Errorf("linear model file %s: %w", path, err)
	}
	return StaticLinearModel(weights), nil
}
