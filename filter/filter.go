// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: filter/filter.go
// Summary: Query matching for launcher entries (normal, prefix, fuzzy, glob, regex).
// Usage: Compile a query once with New, then call Match or Filter on candidates.

package filter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Method selects how a query is compared against candidates.
type Method int

const (
	Normal Method = iota
	Prefix
	Fuzzy
	Glob
	Regex
)

var methodNames = []string{"normal", "prefix", "fuzzy", "glob", "regex"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod maps a config or flag value to a Method.
func ParseMethod(s string) (Method, error) {
	for i, name := range methodNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Method(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown matching method %q", s)
}

func init() {
	algo.Init("default")
}

// Options tune a Matcher.
type Options struct {
	Method        Method
	CaseSensitive bool
	// Sort orders results by edit distance to the query (fuzzy: by score).
	Sort bool
}

// Matcher is a compiled query. It is not safe for concurrent use.
type Matcher struct {
	opts   Options
	query  string
	tokens []string
	re     *regexp.Regexp
	fold   cases.Caser
	slab   *util.Slab
	bad    bool
}

// New compiles query. An invalid glob or regex yields a Matcher that
// matches nothing; Err reports why.
func New(query string, opts Options) *Matcher {
	m := &Matcher{
		opts: opts,
		fold: cases.Fold(),
	}
	m.query = m.normalize(query)
	switch opts.Method {
	case Glob, Regex:
		pattern := strings.TrimSpace(m.query)
		if pattern == "" {
			break
		}
		if opts.Method == Glob {
			pattern = globToRegexp(pattern)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			m.bad = true
			break
		}
		m.re = re
	case Fuzzy:
		m.tokens = strings.Fields(m.query)
		m.slab = util.MakeSlab(100*1024, 2048)
	default:
		m.tokens = strings.Fields(m.query)
	}
	return m
}

// Err reports whether the query failed to compile.
func (m *Matcher) Err() error {
	if !m.bad {
		return nil
	}
	return fmt.Errorf("invalid %s pattern %q", m.opts.Method, m.query)
}

// Empty reports whether the query matches everything.
func (m *Matcher) Empty() bool {
	return !m.bad && m.re == nil && len(m.tokens) == 0
}

func (m *Matcher) normalize(s string) string {
	s = norm.NFC.String(s)
	if !m.opts.CaseSensitive {
		s = m.fold.String(s)
	}
	return s
}

// Match reports whether candidate satisfies the query.
func (m *Matcher) Match(candidate string) bool {
	_, ok := m.Score(candidate)
	return ok
}

// Score matches candidate and returns a score; higher is better. Only the
// fuzzy method produces meaningful scores.
func (m *Matcher) Score(candidate string) (int, bool) {
	if m.bad {
		return 0, false
	}
	if m.Empty() {
		return 0, true
	}
	text := m.normalize(candidate)
	switch m.opts.Method {
	case Glob, Regex:
		return 0, m.re.MatchString(text)
	case Prefix:
		for _, tok := range m.tokens {
			if !hasWordPrefix(text, tok) {
				return 0, false
			}
		}
		return 0, true
	case Fuzzy:
		chars := util.ToChars([]byte(text))
		total := 0
		for _, tok := range m.tokens {
			res, _ := algo.FuzzyMatchV2(true, false, true, &chars, []rune(tok), false, m.slab)
			if res.Start < 0 {
				return 0, false
			}
			total += res.Score
		}
		return total, true
	}
	for _, tok := range m.tokens {
		if !strings.Contains(text, tok) {
			return 0, false
		}
	}
	return 0, true
}

// Filter returns the indices of matching candidates in input order, or
// ranked when Options.Sort is set. Ties keep input order.
func (m *Matcher) Filter(candidates []string) []int {
	type hit struct {
		idx   int
		score int
		dist  int
	}
	hits := make([]hit, 0, len(candidates))
	for i, c := range candidates {
		score, ok := m.Score(c)
		if !ok {
			continue
		}
		h := hit{idx: i, score: score}
		if m.opts.Sort && !m.Empty() && m.opts.Method != Fuzzy {
			h.dist = levenshtein.ComputeDistance(m.query, m.normalize(c))
		}
		hits = append(hits, h)
	}
	if m.opts.Sort && !m.Empty() {
		sort.SliceStable(hits, func(i, j int) bool {
			if m.opts.Method == Fuzzy {
				return hits[i].score > hits[j].score
			}
			return hits[i].dist < hits[j].dist
		})
	}
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.idx
	}
	return out
}

// Filter compiles query and filters candidates in one call.
func Filter(candidates []string, query string, opts Options) []int {
	return New(query, opts).Filter(candidates)
}

// hasWordPrefix reports whether tok starts text or starts a word in it.
func hasWordPrefix(text, tok string) bool {
	for i := 0; i <= len(text)-len(tok); {
		j := strings.Index(text[i:], tok)
		if j < 0 {
			return false
		}
		at := i + j
		if at == 0 || !isWordRune(lastRune(text[:at])) {
			return true
		}
		i = at + 1
	}
	return false
}

func lastRune(s string) rune {
	r := []rune(s)
	return r[len(r)-1]
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// globToRegexp turns a shell glob into an unanchored regular expression.
// Character classes are passed through.
func globToRegexp(glob string) string {
	var b strings.Builder
	inClass := false
	for _, r := range glob {
		switch {
		case inClass:
			if r == ']' {
				inClass = false
			}
			b.WriteRune(r)
		case r == '*':
			b.WriteString(".*")
		case r == '?':
			b.WriteString(".")
		case r == '[':
			inClass = true
			b.WriteRune(r)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}
