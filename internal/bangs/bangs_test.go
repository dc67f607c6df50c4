package bangs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/rankcore/internal/rankerr"
)

const youtubeJSON = `[{
	"c": "Multimedia",
	"d": "www.youtube.com",
	"r": 1646,
	"s": "Youtube",
	"sc": "Video",
	"t": "ty",
	"u": "https://www.youtube.com/results?search_query={{{s}}}"
}]`

func TestLookup_NoBangTermReturnsNil(t *testing.T) {
	table, err := LoadReader(strings.NewReader(youtubeJSON))
	require.NoError(t, err)

	hit, err := table.Lookup([]Term{Word("foo"), Word("bar")})
	require.NoError(t, err)
	assert.Nil(t, hit)
}

func TestLookup_UnregisteredBangTagReturnsNil(t *testing.T) {
	table, err := LoadReader(strings.NewReader(youtubeJSON))
	require.NoError(t, err)

	hit, err := table.Lookup([]Term{PossibleBang("xx"), Word("bangs")})
	require.NoError(t, err)
	assert.Nil(t, hit)
}

func TestLookup_MatchingBangRedirects(t *testing.T) {
	table, err := LoadReader(strings.NewReader(youtubeJSON))
	require.NoError(t, err)

	hit, err := table.Lookup([]Term{PossibleBang("ty"), Word("bangs")})
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "https://www.youtube.com/results?search_query=bangs", hit.RedirectTo.String())
}

func TestLookup_UnmatchedBangKeptInRemainder(t *testing.T) {
	table, err := LoadReader(strings.NewReader(youtubeJSON))
	require.NoError(t, err)

	hit, err := table.Lookup([]Term{PossibleBang("ty"), PossibleBang("foo"), Word("bangs")})
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "https://www.youtube.com/results?search_query=!foo bangs", hit.RedirectTo.String())
}

func TestLookup_FirstMatchingBangWins(t *testing.T) {
	twoBangs := `[
		{"t": "a", "u": "https://a.example/?q={{{s}}}"},
		{"t": "b", "u": "https://b.example/?q={{{s}}}"}
	]`
	table, err := LoadReader(strings.NewReader(twoBangs))
	require.NoError(t, err)

	hit, err := table.Lookup([]Term{PossibleBang("a"), PossibleBang("b"), Word("x")})
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "a", hit.Bang.Tag)
}

func TestLoad_DuplicateTagLastEntryWins(t *testing.T) {
	dup := `[
		{"t": "dup", "u": "https://first.example/?q={{{s}}}"},
		{"t": "dup", "u": "https://second.example/?q={{{s}}}"}
	]`
	table, err := LoadReader(strings.NewReader(dup))
	require.NoError(t, err)

	hit, err := table.Lookup([]Term{PossibleBang("dup"), Word("x")})
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "https://second.example/?q=x", hit.RedirectTo.String())
}

func TestLoad_MalformedJSONReturnsMalformedBangs(t *testing.T) {
	_, err := LoadReader(strings.NewReader(`not json`))
	require.Error(t, err)
	assert.Equal(t, rankerr.ErrCodeMalformedBangs, rankerr.GetCode(err))
}

func TestLoad_FromFilesystemPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bangs.json")
	require.NoError(t, os.WriteFile(path, []byte(youtubeJSON), 0o644))

	table, err := Load(path)
	require.NoError(t, err)

	hit, err := table.Lookup([]Term{PossibleBang("ty"), Word("bangs")})
	require.NoError(t, err)
	require.NotNil(t, hit)
}

func TestLoad_InMemoryJSONDetectedAsText(t *testing.T) {
	table, err := Load(youtubeJSON)
	require.NoError(t, err)

	hit, err := table.Lookup([]Term{PossibleBang("ty"), Word("bangs")})
	require.NoError(t, err)
	require.NotNil(t, hit)
}

func TestTermSurface(t *testing.T) {
	assert.Equal(t, "hello", Word("hello").Surface())
	assert.Equal(t, "!ty", PossibleBang("ty").Surface())
	assert.Equal(t, `"a b"`, Phrase("a", "b").Surface())
	assert.Equal(t, "site:example.com", Field("site", "example.com").Surface())
	assert.Equal(t, "raw", Other("raw").Surface())
}
