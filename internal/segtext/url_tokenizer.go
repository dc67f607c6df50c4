package segtext

import (
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis"
)

// urlTokenizer implements analysis.Tokenizer by splitting on runs of
// non-alphanumeric characters, the separators that occur in URLs
// (`/`, `.`, `-`, `_`, `?`, `=`, `&`, `:`).
type urlTokenizer struct{}

func (urlTokenizer) Tokenize(input []byte) analysis.TokenStream {
	runes := []rune(string(input))
	var result analysis.TokenStream
	pos := 1
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		term := string(runes[start:end])
		result = append(result, &analysis.Token{
			Term:     []byte(term),
			Start:    start,
			End:      end,
			Position: pos,
			Type:     analysis.AlphaNumeric,
		})
		pos++
		start = -1
	}

	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(runes))

	return result
}
