package cmd

import (
	"strings"

	"github.com/Aman-CERP/rankcore/pkg/ranking/bm25"
	"github.com/Aman-CERP/rankcore/pkg/ranking/computer"
	"github.com/Aman-CERP/rankcore/pkg/ranking/segment"
	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

// toyPosting is a single-document posting iterator: either exhausted or
// sitting on doc 0, never advancing further — enough to exercise the
// core's ascending-doc contract from the command line without a real
// index.
type toyPosting struct {
	freq uint32
	done bool
}

func (p *toyPosting) Doc() uint32 {
	if p.done {
		return ^uint32(0)
	}
	return 0
}

func (p *toyPosting) Freq() uint32 { return p.freq }

func (p *toyPosting) Seek(target uint32) uint32 {
	if target > 0 {
		p.done = true
	}
	return p.Doc()
}

func (p *toyPosting) Exhausted() bool { return p.done }

type toyIndex struct{ termFreq map[string]uint32 }

func (idx *toyIndex) ReadPostings(term string, _ segment.RecordOption) (segment.PostingIterator, error) {
	freq, ok := idx.termFreq[term]
	if !ok {
		return nil, nil
	}
	return &toyPosting{freq: freq}, nil
}

type toyNorms struct{ length int }

func (n *toyNorms) FieldLength(uint32) int { return n.length }

type toyStats struct {
	totalDocs      uint64
	avgFieldLength float64
	docFreq        map[string]uint64
}

func (s *toyStats) DocFreq(term string) (uint64, error) { return s.docFreq[term], nil }
func (s *toyStats) TotalDocs() uint64                    { return s.totalDocs }
func (s *toyStats) AvgFieldLength() float64              { return s.avgFieldLength }

// toySearcher is a one-document, one-field-populated segment.Searcher:
// every field other than the populated one reports no postings.
type toySearcher struct {
	field    signal.TextField
	text     string
	termFreq map[string]uint32
}

func newToySearcher(field signal.TextField, text string) *toySearcher {
	tokens := strings.Fields(strings.ToLower(text))
	freq := make(map[string]uint32, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	return &toySearcher{field: field, text: text, termFreq: freq}
}

func (s *toySearcher) InvertedIndex(field signal.TextField) (segment.InvertedIndex, error) {
	if field != s.field {
		return &toyIndex{}, nil
	}
	return &toyIndex{termFreq: s.termFreq}, nil
}

func (s *toySearcher) FieldStatistics(field signal.TextField) (bm25.FieldStatistics, error) {
	if field != s.field {
		return &toyStats{totalDocs: 1}, nil
	}
	docFreq := make(map[string]uint64, len(s.termFreq))
	for term := range s.termFreq {
		docFreq[term] = 1
	}
	return &toyStats{totalDocs: 1, avgFieldLength: float64(len(strings.Fields(s.text))), docFreq: docFreq}, nil
}

func (s *toySearcher) FieldNormsReader(field signal.TextField) (segment.FieldNormReader, error) {
	if field != s.field {
		return &toyNorms{}, nil
	}
	return &toyNorms{length: len(strings.Fields(s.text))}, nil
}

// toyFastFields reports fixed values for doc 0 only, used to demonstrate
// the precomputable/dynamic signal lookups from the command line.
type toyFastFields struct {
	hostCentrality float64
	pageRank       float64
}

func (f *toyFastFields) HostCentrality(uint32) float64      { return f.hostCentrality }
func (f *toyFastFields) PageRank(uint32) float64             { return f.pageRank }
func (f *toyFastFields) UpdateTimestampSeconds(uint32) int64 { return 0 }
func (f *toyFastFields) FetchTimeMS(uint32) int64            { return 0 }
func (f *toyFastFields) Region(uint32) computer.Region       { return "" }
func (f *toyFastFields) HostID(uint32) string                { return "" }
func (f *toyFastFields) NodeID(uint32) string                { return "" }

type toyCompileCtx struct{}

func (toyCompileCtx) SegmentID() string { return "toy-segment" }
