package segtext

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/rankcore/pkg/ranking/signal"
)

func TestProseAnalyzer_LowercasesAndSplitsOnWordBoundaries(t *testing.T) {
	a := NewProseAnalyzer()

	got := a.Tokenize("The Quick Brown Fox")

	assert.Equal(t, []string{"the", "quick", "brown", "fox"}, got)
}

func TestProseAnalyzer_EmptyTextYieldsNoTokens(t *testing.T) {
	a := NewProseAnalyzer()

	assert.Empty(t, a.Tokenize(""))
}

func TestURLAnalyzer_SplitsOnSeparatorsAndLowercases(t *testing.T) {
	a := NewURLAnalyzer()

	got := a.Tokenize("https://Example.com/path/to-page?id=42")

	assert.Equal(t, []string{"https", "example", "com", "path", "to", "page", "id", "42"}, got)
}

func TestDefaultTokenizers_CoversAllTextFields(t *testing.T) {
	tokenizers := DefaultTokenizers()

	for _, field := range signal.TextFields() {
		if _, ok := tokenizers[field]; !ok {
			t.Errorf("missing tokenizer for field %v", field)
		}
	}
}
