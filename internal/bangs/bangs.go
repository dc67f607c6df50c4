// Package bangs implements the bang redirector: a tag-to-URL-template
// table and the lookup that turns a `!tag` token in a parsed query into an
// external redirect URL.
package bangs

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/Aman-CERP/rankcore/internal/rankerr"
)

// Prefix is the character that marks a query token as a possible bang.
const Prefix = '!'

// placeholder is the literal substring a Bang's URL template interpolates
// the non-bang remainder of the query into.
const placeholder = "{{{s}}}"

// Bang is one entry in a bang table: a tag mapped to a redirect URL
// template, plus optional display metadata carried through from the
// source JSON but not interpreted by this package.
type Bang struct {
	Tag         string
	URLTemplate string
	Category    string
	SubCategory string
	Domain      string
	Site        string
	Ranking     *int
}

// Hit is the result of a successful bang lookup: the matched bang and the
// redirect URL built from it. Produced on demand, never stored.
type Hit struct {
	Bang       Bang
	RedirectTo *url.URL
}

// bangJSON mirrors the external wire shape: short field names, all optional
// except tag and url. Unknown fields are ignored by encoding/json by
// default.
type bangJSON struct {
	Tag         string `json:"t"`
	URL         string `json:"u"`
	Category    string `json:"c,omitempty"`
	SubCategory string `json:"sc,omitempty"`
	Domain      string `json:"d,omitempty"`
	Site        string `json:"s,omitempty"`
	Ranking     *int   `json:"r,omitempty"`
}

// Table is an immutable tag → Bang mapping, built once by Load and never
// mutated afterward. Safe for concurrent reads from many goroutines.
type Table struct {
	byTag map[string]Bang
}

// Load parses source as a bang table. source may be a filesystem path or
// literal JSON text; a path is detected by stat'ing it first. When source
// is a path, an advisory shared lock on source+".lock" is held for the
// duration of the read so a concurrent writer regenerating the file cannot
// be read mid-write. If that lock cannot be taken within 50ms, the file is
// read without it.
// Duplicate tags: the last entry in the array wins.
func Load(source string) (*Table, error) {
	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		return loadPath(source)
	}
	return LoadReader(strings.NewReader(source))
}

func loadPath(path string) (*Table, error) {
	lock := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	locked, err := lock.TryRLockContext(ctx, 5*time.Millisecond)
	if err == nil && locked {
		defer lock.Unlock()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, rankerr.MalformedBangs("open bang table file", err)
	}
	defer f.Close()

	return LoadReader(f)
}

// LoadReader parses a bang table from r. Exposed separately from Load so
// callers with an already-open file or an in-memory buffer can skip the
// path-detection heuristic.
func LoadReader(r io.Reader) (*Table, error) {
	var entries []bangJSON
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, rankerr.MalformedBangs("decode bang table JSON", err)
	}

	byTag := make(map[string]Bang, len(entries))
	for _, e := range entries {
		byTag[e.Tag] = Bang{
			Tag:         e.Tag,
			URLTemplate: e.URL,
			Category:    e.Category,
			SubCategory: e.SubCategory,
			Domain:      e.Domain,
			Site:        e.Site,
			Ranking:     e.Ranking,
		}
	}

	return &Table{byTag: byTag}, nil
}

// Lookup scans terms in order for the first PossibleBang term whose tag is
// registered in the table. On a match, it renders every other term to its
// surface form (in original query order), joins them with single spaces,
// and substitutes that string for every occurrence of the URL template's
// placeholder. Returns nil, nil when no term matches any tag — a routine
// outcome, not an error. Returns InvalidRedirect if the rendered URL fails
// to parse.
func (t *Table) Lookup(terms []Term) (*Hit, error) {
	for i, term := range terms {
		if term.Kind != KindPossibleBang {
			continue
		}
		bang, ok := t.byTag[term.Text]
		if !ok {
			continue
		}

		remainder := joinSurfaceExcept(terms, i)
		rendered := strings.ReplaceAll(bang.URLTemplate, placeholder, remainder)

		redirectTo, err := url.Parse(rendered)
		if err != nil {
			return nil, rankerr.InvalidRedirect(rendered, err)
		}

		return &Hit{Bang: bang, RedirectTo: redirectTo}, nil
	}
	return nil, nil
}

func joinSurfaceExcept(terms []Term, skip int) string {
	var b strings.Builder
	first := true
	for i, term := range terms {
		if i == skip {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(term.Surface())
	}
	return b.String()
}
