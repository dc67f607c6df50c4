// Package signal declares the closed set of ranking signals a document can
// be scored on: their kind, stable name, and default coefficient.
//
// The registry here is metadata only; the
// actual per-document computation lives in pkg/ranking/computer, which owns
// the segment and query state the computation needs. Keeping the enum and
// its metadata free of that state lets the compute order (package-level
// Order, see order.go) and the coefficient-resolution logic in the computer
// package both depend on it without a cycle.
package signal

import "fmt"

// Kind classifies how a signal's value is produced.
type Kind int

const (
	// KindTextual signals are computed from BM25 over a bound text field.
	KindTextual Kind = iota
	// KindPrecomputable signals depend only on the document and can be
	// attached to the document at index time.
	KindPrecomputable
	// KindDynamic signals depend on query, document, and environment and
	// can only be computed at query time.
	KindDynamic
)

func (k Kind) String() string {
	switch k {
	case KindTextual:
		return "textual"
	case KindPrecomputable:
		return "precomputable"
	case KindDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// TextField is one of the scorable text fields a document may carry.
type TextField int

const (
	FieldTitle TextField = iota
	FieldBody
	FieldURL
	FieldAnchor
	numTextFields
)

func (f TextField) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldBody:
		return "body"
	case FieldURL:
		return "url"
	case FieldAnchor:
		return "anchor"
	default:
		return "unknown"
	}
}

// TextFields returns every registered text field, in a stable order.
func TextFields() []TextField {
	fields := make([]TextField, numTextFields)
	for i := range fields {
		fields[i] = TextField(i)
	}
	return fields
}

// Signal is a closed enumeration of every scorable signal.
type Signal int

const (
	BM25Title Signal = iota
	BM25Body
	BM25URL
	BM25Anchor
	HostCentrality
	PageRank
	UpdateTimestamp
	FetchTimeMS
	RegionMatch
	QueryCentrality
	InboundSimilarity
	numSignals
)

// Def is the registry entry for one signal: its kind, stable tag, default
// coefficient, and (for textual signals) the field it scores.
type Def struct {
	Name               string
	Kind               Kind
	Field              TextField // only meaningful when Kind == KindTextual
	DefaultCoefficient float64
}

var defs = [numSignals]Def{
	BM25Title:         {Name: "bm25_title", Kind: KindTextual, Field: FieldTitle, DefaultCoefficient: 3.0},
	BM25Body:          {Name: "bm25_body", Kind: KindTextual, Field: FieldBody, DefaultCoefficient: 1.0},
	BM25URL:           {Name: "bm25_url", Kind: KindTextual, Field: FieldURL, DefaultCoefficient: 1.5},
	BM25Anchor:        {Name: "bm25_anchor", Kind: KindTextual, Field: FieldAnchor, DefaultCoefficient: 1.0},
	HostCentrality:    {Name: "host_centrality", Kind: KindPrecomputable, DefaultCoefficient: 2048.0},
	PageRank:          {Name: "page_rank", Kind: KindPrecomputable, DefaultCoefficient: 0.0},
	UpdateTimestamp:   {Name: "update_timestamp", Kind: KindDynamic, DefaultCoefficient: 200.0},
	FetchTimeMS:       {Name: "fetch_time_ms", Kind: KindDynamic, DefaultCoefficient: 1.0},
	RegionMatch:       {Name: "region_match", Kind: KindDynamic, DefaultCoefficient: 50.0},
	QueryCentrality:   {Name: "query_centrality", Kind: KindDynamic, DefaultCoefficient: 2048.0},
	InboundSimilarity: {Name: "inbound_similarity", Kind: KindDynamic, DefaultCoefficient: 1024.0},
}

var byName map[string]Signal

func init() {
	byName = make(map[string]Signal, numSignals)
	for s := Signal(0); s < numSignals; s++ {
		byName[defs[s].Name] = s
	}
}

// All returns every registered signal, in a stable, contiguous order. The
// order here is the declaration order above; compute-order pruning and
// grouping happens in Order, not here.
func All() []Signal {
	out := make([]Signal, numSignals)
	for i := range out {
		out[i] = Signal(i)
	}
	return out
}

// Metadata returns the registry entry for s.
func (s Signal) Metadata() Def {
	if s < 0 || int(s) >= len(defs) {
		return Def{Name: "invalid"}
	}
	return defs[s]
}

func (s Signal) String() string {
	return s.Metadata().Name
}

// Kind reports whether s is textual, precomputable, or dynamic.
func (s Signal) Kind() Kind {
	return s.Metadata().Kind
}

// DefaultCoefficient is the coefficient used when neither a query override
// nor a linear model weight is available.
func (s Signal) DefaultCoefficient() float64 {
	return s.Metadata().DefaultCoefficient
}

// ByName resolves a stable signal tag (as found in a signal coefficient
// table) back to its enum value.
func ByName(name string) (Signal, bool) {
	s, ok := byName[name]
	return s, ok
}

// ParseCoefficients converts an external, string-keyed coefficient table
// (as supplied with a query, see spec §6) into the enum-keyed form the
// computer works with. Unknown names are rejected rather than silently
// dropped, since a typo'd signal name in a query is a caller bug worth
// surfacing early.
func ParseCoefficients(named map[string]float64) (map[Signal]float64, error) {
	out := make(map[Signal]float64, len(named))
	for name, v := range named {
		s, ok := ByName(name)
		if !ok {
			return nil, fmt.Errorf("signal: unknown signal name %q", name)
		}
		out[s] = v
	}
	return out, nil
}

// Score is the coefficient and raw value that make up one signal's
// contribution to the final score.
type Score struct {
	Coefficient float64
	Value       float64
}

// Contribution is coefficient * value, the signal's additive share of the
// final document score.
func (s Score) Contribution() float64 {
	return s.Coefficient * s.Value
}

// ComputedSignal pairs a signal with its resolved score for one document.
type ComputedSignal struct {
	Signal Signal
	Score  Score
}
