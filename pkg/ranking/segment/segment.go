// Package segment defines the interfaces this core consumes from an
// inverted index segment — postings, field-norms, and docsets — and binds
// query terms against a segment's text fields. The index itself,
// its storage format, and posting-list encoding are out of scope; this
// package only describes the shape the core needs.
//
// Posting cursors only move forward: within a segment, callers must score
// documents in ascending doc-id order.
package segment

import (
	"strings"

	"github.com/Aman-CERP/rankcore/internal/rankerr"
	"github.com/Aman-CERP/rankcore/pkg/ranking/bm25"
	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

// RecordOption selects how much information a posting iterator carries.
// Mirrors the index's own posting encodings; this core only needs term
// frequency to score BM25.
type RecordOption int

const (
	// RecordBasic carries doc ids only.
	RecordBasic RecordOption = iota
	// RecordFreq carries doc ids and per-document term frequency.
	RecordFreq
)

// PostingIterator walks the ascending doc ids containing a term in a field.
// Cursors advance monotonically; seeking to a doc id less than the current
// position is undefined (callers must not do it — see package doc).
type PostingIterator interface {
	// Doc returns the current doc id, or a sentinel "exhausted" value once
	// advancement runs past the last posting.
	Doc() uint32
	// Freq returns the term frequency at the current doc. Only meaningful
	// when opened with RecordFreq.
	Freq() uint32
	// Seek advances the cursor to the first doc id >= target, returning the
	// new current doc. Must be called with non-decreasing targets.
	Seek(target uint32) uint32
	// Exhausted reports whether the iterator has no more postings.
	Exhausted() bool
}

// FieldNormReader exposes compact per-document field lengths.
type FieldNormReader interface {
	// FieldLength returns the number of tokens doc has in this field.
	FieldLength(doc uint32) int
}

// Tokenizer splits a query string into index terms for one field. Field
// tokenizers differ: a URL field and a body field segment text differently.
type Tokenizer interface {
	Tokenize(text string) []string
}

// InvertedIndex is the per-field posting-list source this core reads from.
type InvertedIndex interface {
	// ReadPostings opens a posting iterator for term under opt. Returns a
	// nil iterator (not an error) when the term has no postings in this
	// segment — absence is a routine outcome, not a failure.
	ReadPostings(term string, opt RecordOption) (PostingIterator, error)
}

// Searcher is the subset of the index searcher surface this core consumes:
// collection statistics for BM25 and per-field accessors.
type Searcher interface {
	InvertedIndex(field signal.TextField) (InvertedIndex, error)
	FieldStatistics(field signal.TextField) (bm25.FieldStatistics, error)
	FieldNormsReader(field signal.TextField) (FieldNormReader, error)
}

// TextFieldData is the bound per-field state produced by BindTextFields:
// the surviving postings, the BM25 weight over them, and the field-norm
// reader. Its lifetime is tied to the segment registration.
type TextFieldData struct {
	Field    signal.TextField
	Postings []PostingIterator
	Terms    []string
	Weight   *bm25.Weight
	Norms    FieldNormReader
}

// BindTextFields tokenizes simpleTerms with each field's tokenizer, for
// every field referenced by an active textual signal, opens postings for
// the resulting terms, drops terms with no postings in this segment
// without aborting, and builds a BM25 weight over the survivors. Fields
// that produce no tokens are skipped and absent from the result.
func BindTextFields(
	fields []signal.TextField,
	simpleTerms []string,
	tokenizers map[signal.TextField]Tokenizer,
	searcher Searcher,
	params bm25.Params,
) (map[signal.TextField]*TextFieldData, error) {
	simpleQuery := strings.Join(simpleTerms, " ")
	bound := make(map[signal.TextField]*TextFieldData, len(fields))

	for _, field := range fields {
		tok, ok := tokenizers[field]
		if !ok {
			continue
		}
		tokens := tok.Tokenize(simpleQuery)
		if len(tokens) == 0 {
			continue
		}

		index, err := searcher.InvertedIndex(field)
		if err != nil {
			return nil, rankerr.IndexError("open inverted index for field "+field.String(), err)
		}

		var postings []PostingIterator
		var terms []string
		seen := make(map[string]bool, len(tokens))
		for _, term := range tokens {
			if seen[term] {
				continue
			}
			seen[term] = true

			iter, err := index.ReadPostings(term, RecordFreq)
			if err != nil {
				return nil, rankerr.IndexError("read postings for term "+term, err)
			}
			if iter == nil {
				continue
			}
			postings = append(postings, iter)
			terms = append(terms, term)
		}

		if len(terms) == 0 {
			continue
		}

		norms, err := searcher.FieldNormsReader(field)
		if err != nil {
			return nil, rankerr.IndexError("open fieldnorms reader for field "+field.String(), err)
		}

		stats, err := searcher.FieldStatistics(field)
		if err != nil {
			return nil, rankerr.IndexError("read field statistics for field "+field.String(), err)
		}

		weight, err := bm25.BuildWeight(terms, stats, params)
		if err != nil {
			return nil, err
		}

		bound[field] = &TextFieldData{
			Field:    field,
			Postings: postings,
			Terms:    terms,
			Weight:   weight,
			Norms:    norms,
		}
	}

	return bound, nil
}

// TermFrequencies advances data's postings to doc (ascending-doc invariant;
// see package doc) and returns the per-term frequency map BM25 needs. A
// posting whose cursor has already advanced past doc without landing on it
// contributes zero. Seeking backwards is never performed: a caller that
// requests a doc id less than a posting's current position gets no
// contribution from that posting, per the documented ascending-order
// precondition — this is intentionally not defended against.
func TermFrequencies(data *TextFieldData, doc uint32) map[string]int {
	freqs := make(map[string]int, len(data.Postings))
	for i, p := range data.Postings {
		if p.Exhausted() {
			continue
		}
		if p.Doc() < doc {
			p.Seek(doc)
		}
		if p.Doc() == doc {
			freqs[data.Terms[i]] = int(p.Freq())
		}
	}
	return freqs
}

// Score computes the BM25 score for doc against data, per the textual
// signal contract: the sum over surviving terms using the recorded
// postings and field-norm reader.
func Score(data *TextFieldData, doc uint32) float64 {
	freqs := TermFrequencies(data, doc)
	if len(freqs) == 0 {
		return 0
	}
	return data.Weight.Score(freqs, data.Norms.FieldLength(doc))
}
