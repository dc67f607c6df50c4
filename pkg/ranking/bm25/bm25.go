// Package bm25 builds per-term BM25 weights for a segment's matched terms
// and scores documents against them. It knows nothing about fields,
// postings, or tokenization — those live in pkg/ranking/segment, which
// constructs a Weight per field from this package.
package bm25

import (
	"fmt"
	"math"

	"github.com/Aman-CERP/rankcore/internal/rankerr"
)

// Params are the shared BM25 tuning parameters.
type Params struct {
	K1 float64
	B  float64
}

// FieldStatistics is the subset of the index searcher's collection
// statistics this package needs to build per-term IDF weights. Implemented
// by the segment package against the real index; out of scope for this
// core (see package segment).
type FieldStatistics interface {
	// DocFreq returns the number of documents in the field containing term.
	DocFreq(term string) (uint64, error)
	// TotalDocs returns the total number of documents carrying this field.
	TotalDocs() uint64
	// AvgFieldLength returns the average number of tokens per document for
	// this field.
	AvgFieldLength() float64
}

// Weight carries per-term IDF weights and the shared (k1, b) parameters for
// one field's matched terms, per the canonical BM25 definition.
type Weight struct {
	params         Params
	avgFieldLength float64
	idf            map[string]float64
}

// BuildWeight constructs a MultiBm25Weight-equivalent over terms that have
// postings in this segment. Any I/O failure reading collection statistics
// propagates as rankerr.IndexError; there are no retries.
func BuildWeight(terms []string, stats FieldStatistics, params Params) (*Weight, error) {
	n := float64(stats.TotalDocs())
	idf := make(map[string]float64, len(terms))

	for _, term := range terms {
		df, err := stats.DocFreq(term)
		if err != nil {
			return nil, rankerr.IndexError(fmt.Sprintf("doc frequency for term %q", term), err)
		}
		idf[term] = IDF(n, float64(df))
	}

	return &Weight{
		params:         params,
		avgFieldLength: stats.AvgFieldLength(),
		idf:            idf,
	}, nil
}

// IDF computes ln(1 + (N-df+0.5)/(df+0.5)), the canonical Okapi BM25 inverse
// document frequency term.
func IDF(totalDocs, docFreq float64) float64 {
	return math.Log(1.0 + (totalDocs-docFreq+0.5)/(docFreq+0.5))
}

// Score computes the BM25 score for a document given its per-term
// frequencies within the field and its field length (in tokens). Terms
// absent from termFreqs or from the weight's IDF table (no postings in this
// segment) do not contribute.
func (w *Weight) Score(termFreqs map[string]int, fieldLength int) float64 {
	if w.avgFieldLength == 0 {
		return 0
	}

	docLenNorm := 1.0 - w.params.B + w.params.B*(float64(fieldLength)/w.avgFieldLength)

	var score float64
	for term, tf := range termFreqs {
		if tf == 0 {
			continue
		}
		idf, ok := w.idf[term]
		if !ok {
			continue
		}
		tfFloat := float64(tf)
		tfComponent := (tfFloat * (w.params.K1 + 1.0)) / (tfFloat + w.params.K1*docLenNorm)
		score += idf * tfComponent
	}
	return score
}

// Terms returns the terms this weight carries IDF values for, i.e. the
// terms that survived posting-list lookup in the bound segment.
func (w *Weight) Terms() []string {
	terms := make([]string, 0, len(w.idf))
	for t := range w.idf {
		terms = append(terms, t)
	}
	return terms
}
