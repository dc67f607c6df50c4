package computer

import (
	"github.com/Aman-CERP/rankcore/pkg/ranking/optic"
	"github.com/Aman-CERP/rankcore/pkg/ranking/segment"
	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

// Region identifies a geographic region a document or query can be
// attributed to. The partitioning itself is out of scope; this core only
// compares region identity and asks a RegionCounter for population share.
type Region string

// RegionCounter reports how common a region is among indexed documents,
// used by the region_match signal when the document's region doesn't match
// the query's.
type RegionCounter interface {
	Proportion(r Region) float64
}

// CentralityScorer scores a host or node id against a held, query-scoped
// cache. Interior mutable: each cloned Computer must hold its own instance
// (see Computer.Clone).
type CentralityScorer interface {
	Score(id string) float64
	Clone() CentralityScorer
}

// LinearModel supplies trained per-signal weights that sit between query
// overrides and registry defaults in coefficient resolution order.
type LinearModel interface {
	Weight(s signal.Signal) (float64, bool)
}

// DocFastFields is the per-document columnar value store this core reads
// precomputable and dynamic signal inputs from. Random access by doc id;
// out of scope for this core beyond the interface.
type DocFastFields interface {
	HostCentrality(doc uint32) float64
	PageRank(doc uint32) float64
	UpdateTimestampSeconds(doc uint32) int64
	FetchTimeMS(doc uint32) int64
	Region(doc uint32) Region
	HostID(doc uint32) string
	NodeID(doc uint32) string
}

// Webpage is the document-resident view used by the precompute path:
// the same fields DocFastFields exposes by doc id, supplied by value at
// indexing time before the document has a doc id in any segment.
type Webpage struct {
	HostCentrality float64
	PageRank       float64
}

// Query is the parsed, per-request input to the ranking core.
type Query struct {
	SimpleTerms        []string
	OpticRules         []optic.Rule
	Region             *Region
	SignalCoefficients map[signal.Signal]float64
}

// segmentState is the mutable, per-segment binding a Computer holds between
// RegisterSegment calls. Dropped on Clone — each thread binds its own.
type segmentState struct {
	textFields map[signal.TextField]*segment.TextFieldData
	ruleBoosts []optic.RuleBoost
	fastFields DocFastFields
}
