// Package segtext adapts Bleve's analysis tokenizers and token filters to
// the segment.Tokenizer interface the text-field binder consumes.
// Only Bleve's analysis primitives are used — its index and search engine
// play no part here, since this core's own segment abstraction owns
// postings and field norms.
package segtext

import (
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"

	"github.com/Aman-CERP/rankcore/pkg/ranking/segment"
	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

// Analyzer chains a Bleve tokenizer through a sequence of token filters and
// flattens the resulting stream to plain term strings.
type Analyzer struct {
	tokenizer analysis.Tokenizer
	filters   []analysis.TokenFilter
}

// Tokenize implements segment.Tokenizer.
func (a *Analyzer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	stream := a.tokenizer.Tokenize([]byte(text))
	for _, f := range a.filters {
		stream = f.Filter(stream)
	}
	out := make([]string, 0, len(stream))
	for _, tok := range stream {
		if len(tok.Term) == 0 {
			continue
		}
		out = append(out, string(tok.Term))
	}
	return out
}

// NewProseAnalyzer builds the tokenizer used for natural-language text
// fields (title, body, anchor): Bleve's Unicode word-boundary tokenizer,
// lowercased.
func NewProseAnalyzer() *Analyzer {
	return &Analyzer{
		tokenizer: unicode.NewUnicodeTokenizer(),
		filters:   []analysis.TokenFilter{lowercase.NewLowerCaseFilter()},
	}
}

// NewURLAnalyzer builds the tokenizer used for the url field: splits on
// path, host, and query separators rather than natural-language word
// boundaries, then lowercases.
func NewURLAnalyzer() *Analyzer {
	return &Analyzer{
		tokenizer: &urlTokenizer{},
		filters:   []analysis.TokenFilter{lowercase.NewLowerCaseFilter()},
	}
}

// DefaultTokenizers returns the per-field tokenizer set BindTextFields
// needs for all text fields in the signal registry.
func DefaultTokenizers() map[signal.TextField]segment.Tokenizer {
	prose := NewProseAnalyzer()
	return map[signal.TextField]segment.Tokenizer{
		signal.FieldTitle:  prose,
		signal.FieldBody:   prose,
		signal.FieldAnchor: prose,
		signal.FieldURL:    NewURLAnalyzer(),
	}
}
