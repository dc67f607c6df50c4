package computer

import (
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

// PrecomputeScore sums the precomputable signals over a Webpage's own
// fields, without any segment, query terms, or optic rules —
// the index-time score component that can be persisted alongside the
// document and later combined with the query-time signals from
// ComputeSignals. Must produce the same per-signal values ComputeSignals
// would for a document whose fast fields match webpage's.
func (c *Computer) PrecomputeScore(webpage *Webpage) float64 {
	var total float64
	for _, s := range signal.All() {
		if s.Kind() != signal.KindPrecomputable {
			continue
		}
		total += c.Coefficient(s) * precomputableValue(s, webpage)
	}
	return total
}

func precomputableValue(s signal.Signal, webpage *Webpage) float64 {
	switch s {
	case signal.HostCentrality:
		return webpage.HostCentrality
	case signal.PageRank:
		return webpage.PageRank
	default:
		return 0
	}
}

// PrecomputeAll scores a batch of webpages concurrently, preserving input
// order in the returned slice. Each webpage is scored independently, so a
// failure in one does not need to abort the others; PrecomputeScore itself
// cannot fail, but PrecomputeAll returns an error to leave room for a
// future failable per-document cost without breaking callers.
func (c *Computer) PrecomputeAll(webpages []*Webpage) ([]float64, error) {
	scores := make([]float64, len(webpages))
	var g errgroup.Group
	for i, wp := range webpages {
		i, wp := i, wp
		g.Go(func() error {
			scores[i] = c.PrecomputeScore(wp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
