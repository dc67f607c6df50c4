// Package computer turns bound text fields, bound optic rules, and
// fast-field lookups into per-signal scores for a document, via a
// per-segment, per-query Computer, plus an index-time variant that scores
// signals knowable before any document has a doc id.
package computer

import (
	"iter"
	"log/slog"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/rankcore/pkg/ranking/bm25"
	"github.com/Aman-CERP/rankcore/pkg/ranking/optic"
	"github.com/Aman-CERP/rankcore/pkg/ranking/segment"
	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

const (
	freshnessCacheSize = 4096
	fetchTimeCacheSize = 2048
	maxFreshnessHours  = 3 * 365 * 24
	maxFetchTimeMS     = 1000
)

// Computer is the bound, per-query signal computer. One Computer is
// constructed per query via New, then RegisterSegment is called once per
// segment the query touches. Computer is not safe for concurrent use across
// segments — call Clone to obtain an independent copy per goroutine.
type Computer struct {
	query        *Query
	order        signal.Order
	linearModel  LinearModel
	regionCount  RegionCounter
	queryCent    CentralityScorer
	inboundSim   CentralityScorer
	currentTime  int64
	freshness    *lru.Cache[int64, float64]
	fetchTime    *lru.Cache[int64, float64]
	logger       *slog.Logger
	segmentState *segmentState
}

// Option configures a Computer at construction time.
type Option func(*cacheSizes)

type cacheSizes struct {
	freshness int
	fetchTime int
}

// WithCacheSizes overrides the freshness and fetch-time LRU cache capacity.
// Unset, New uses the package defaults (4096/2048 entries).
func WithCacheSizes(freshness, fetchTime int) Option {
	return func(c *cacheSizes) {
		c.freshness = freshness
		c.fetchTime = fetchTime
	}
}

// New constructs a Computer for query. A nil query is treated as &Query{}:
// no simple terms, no optic rules, no coefficient overrides. Signal compute
// order is fixed at construction from the query-override-or-registry-default
// coefficient (not the linear model, which may be set afterward via
// SetLinearModel; see signal.Order's documented design decision). The
// freshness and fetch-time caches are sized here but populated lazily: each
// hour or millisecond value is added on its first lookup.
func New(query *Query, logger *slog.Logger, opts ...Option) *Computer {
	if query == nil {
		query = &Query{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	resolve := func(s signal.Signal) float64 {
		if c, ok := query.SignalCoefficients[s]; ok {
			return c
		}
		return s.DefaultCoefficient()
	}

	sizes := cacheSizes{freshness: freshnessCacheSize, fetchTime: fetchTimeCacheSize}
	for _, opt := range opts {
		opt(&sizes)
	}

	freshness, _ := lru.New[int64, float64](sizes.freshness)
	fetchTime, _ := lru.New[int64, float64](sizes.fetchTime)

	return &Computer{
		query:     query,
		order:     signal.NewOrder(resolve),
		freshness: freshness,
		fetchTime: fetchTime,
		logger:    logger,
	}
}

// SetLinearModel installs a trained linear model. Call it before
// RegisterSegment. Coefficient consults the installed model on every call;
// the compute order fixed by New is not rebuilt.
func (c *Computer) SetLinearModel(m LinearModel) { c.linearModel = m }

// SetRegionCount installs the region population counter used by the
// region_match signal.
func (c *Computer) SetRegionCount(r RegionCounter) { c.regionCount = r }

// SetQueryCentrality installs the query-centrality scorer used by the
// query_centrality signal.
func (c *Computer) SetQueryCentrality(s CentralityScorer) { c.queryCent = s }

// SetInboundSimilarity installs the inbound-similarity scorer used by the
// inbound_similarity signal.
func (c *Computer) SetInboundSimilarity(s CentralityScorer) { c.inboundSim = s }

// SetCurrentTimestamp sets the reference time (unix seconds) the
// update_timestamp signal measures freshness against.
func (c *Computer) SetCurrentTimestamp(unixSeconds int64) { c.currentTime = unixSeconds }

// Coefficient resolves s's coefficient: query override, then linear model
// weight, then registry default.
func (c *Computer) Coefficient(s signal.Signal) float64 {
	if v, ok := c.query.SignalCoefficients[s]; ok {
		return v
	}
	if c.linearModel != nil {
		if v, ok := c.linearModel.Weight(s); ok {
			return v
		}
	}
	return s.DefaultCoefficient()
}

// RegisterSegment binds this Computer against one segment: text fields
// referenced by active textual signals, and the query's optic rules against
// ctx. Must be called before ComputeSignals or Boosts for that segment.
// Replaces any previously bound segment.
func (c *Computer) RegisterSegment(
	searcher segment.Searcher,
	tokenizers map[signal.TextField]segment.Tokenizer,
	params bm25.Params,
	ctx optic.CompileContext,
	fastFields DocFastFields,
) error {
	var textFields map[signal.TextField]*segment.TextFieldData
	if c.order.HasTextual() {
		bound, err := segment.BindTextFields(c.order.TextFields(), c.query.SimpleTerms, tokenizers, searcher, params)
		if err != nil {
			return err
		}
		textFields = bound
	}

	ruleBoosts := optic.BindRules(c.query.OpticRules, ctx, c.logger)

	c.segmentState = &segmentState{
		textFields: textFields,
		ruleBoosts: ruleBoosts,
		fastFields: fastFields,
	}
	return nil
}

// ComputeSignals: lazily yields the computed score of every
// active signal for doc, in the fixed compute order. Not restartable — a
// fresh call to ComputeSignals re-walks the order from the start, but each Seq value
// must be consumed in a single forward pass per the ascending-doc posting
// invariant. Yields nothing if no segment is registered.
func (c *Computer) ComputeSignals(doc uint32) iter.Seq[*signal.ComputedSignal] {
	return func(yield func(*signal.ComputedSignal) bool) {
		if c.segmentState == nil {
			return
		}
		for _, s := range c.order.Active() {
			value := c.computeOne(s, doc)
			cs := &signal.ComputedSignal{
				Signal: s,
				Score:  signal.Score{Coefficient: c.Coefficient(s), Value: value},
			}
			if !yield(cs) {
				return
			}
		}
	}
}

// computeOne dispatches a single signal's raw value at doc. Kept as a
// switch in this package (not in pkg/ranking/signal) to avoid signal
// importing segment/optic/bm25.
func (c *Computer) computeOne(s signal.Signal, doc uint32) float64 {
	ff := c.segmentState.fastFields
	switch s {
	case signal.BM25Title:
		return c.textScore(signal.FieldTitle, doc)
	case signal.BM25Body:
		return c.textScore(signal.FieldBody, doc)
	case signal.BM25URL:
		return c.textScore(signal.FieldURL, doc)
	case signal.BM25Anchor:
		return c.textScore(signal.FieldAnchor, doc)
	case signal.HostCentrality:
		if ff == nil {
			return 0
		}
		return ff.HostCentrality(doc)
	case signal.PageRank:
		if ff == nil {
			return 0
		}
		return ff.PageRank(doc)
	case signal.UpdateTimestamp:
		if ff == nil {
			return 0
		}
		return c.freshnessValue(ff.UpdateTimestampSeconds(doc))
	case signal.FetchTimeMS:
		if ff == nil {
			return 0
		}
		return c.fetchTimeValue(ff.FetchTimeMS(doc))
	case signal.RegionMatch:
		return c.regionMatch(doc)
	case signal.QueryCentrality:
		if ff == nil || c.queryCent == nil {
			return 0
		}
		return c.queryCent.Score(ff.HostID(doc))
	case signal.InboundSimilarity:
		if ff == nil || c.inboundSim == nil {
			return 0
		}
		return c.inboundSim.Score(ff.NodeID(doc))
	default:
		return 0
	}
}

func (c *Computer) textScore(field signal.TextField, doc uint32) float64 {
	data, ok := c.segmentState.textFields[field]
	if !ok {
		return 0
	}
	return segment.Score(data, doc)
}

func (c *Computer) regionMatch(doc uint32) float64 {
	ff := c.segmentState.fastFields
	if ff == nil || c.query.Region == nil {
		return 0
	}
	docRegion := ff.Region(doc)
	if docRegion == *c.query.Region {
		return 1.0
	}
	if c.regionCount == nil {
		return 0
	}
	return c.regionCount.Proportion(docRegion)
}

// freshnessValue returns the cached 1/log2(hours+1) freshness value for the
// number of hours between updatedAt and the computer's current time,
// clamped to [0, maxFreshnessHours).
func (c *Computer) freshnessValue(updatedAtUnix int64) float64 {
	hours := (c.currentTime - updatedAtUnix) / 3600
	if hours < 0 {
		hours = 0
	}
	if hours >= maxFreshnessHours {
		hours = maxFreshnessHours - 1
	}
	if v, ok := c.freshness.Get(hours); ok {
		return v
	}
	v := 1.0 / math.Log2(float64(hours)+1)
	c.freshness.Add(hours, v)
	return v
}

// fetchTimeValue returns the cached 1/(ms+1) value for a fetch latency in
// milliseconds, clamped to [0, maxFetchTimeMS).
func (c *Computer) fetchTimeValue(ms int64) float64 {
	if ms < 0 {
		ms = 0
	}
	if ms >= maxFetchTimeMS {
		ms = maxFetchTimeMS - 1
	}
	if v, ok := c.fetchTime.Get(ms); ok {
		return v
	}
	v := 1.0 / (float64(ms) + 1)
	c.fetchTime.Add(ms, v)
	return v
}

// Boosts returns the optic multiplier for doc, or nil if no segment is
// registered yet.
func (c *Computer) Boosts(doc uint32) *float64 {
	if c.segmentState == nil {
		return nil
	}
	v := optic.Boosts(doc, c.segmentState.ruleBoosts)
	return &v
}

// Clone returns an independent Computer sharing this one's query
// configuration, linear model, region counter, and freshness/fetch-time caches, but
// with its own copies of the interior-mutable centrality scorers and no
// bound segment — the clone must call RegisterSegment itself.
func (c *Computer) Clone() *Computer {
	clone := &Computer{
		query:       c.query,
		order:       c.order,
		linearModel: c.linearModel,
		regionCount: c.regionCount,
		currentTime: c.currentTime,
		freshness:   c.freshness,
		fetchTime:   c.fetchTime,
		logger:      c.logger,
	}
	if c.queryCent != nil {
		clone.queryCent = c.queryCent.Clone()
	}
	if c.inboundSim != nil {
		clone.inboundSim = c.inboundSim.Clone()
	}
	return clone
}
