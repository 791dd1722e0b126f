// Package resolve turns free-text input into ranked catalog matches. The
// passes run cheapest-first: exact symbol, prefix scan, then fuzzy scoring
// over the whole catalog, and finally a cached upstream existence probe for
// symbol-shaped input the catalog does not know.
package resolve

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"TickerDesk/internal/catalog"
	"TickerDesk/internal/model"
)

// ValidationError reports malformed query text. Callers surface it as "no
// results", never as a crash.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid query: " + e.Reason }

// maxQueryLen bounds input so the fuzzy pass stays cheap.
const maxQueryLen = 64

// symbolShape matches plausible ticker syntax: 1-5 uppercase letters with an
// optional class suffix (BRK.B).
var symbolShape = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z]{1,2})?$`)

// Prober checks whether a symbol exists upstream. Positive results are cached
// by the implementation (sampler.Engine), so repeated probes for the same
// unknown symbol do not hit the network.
type Prober interface {
	Probe(ctx context.Context, symbol string) (model.Quote, bool)
}

// Options tune the resolver. Zero fields fall back to the defaults below.
type Options struct {
	MaxResults      int     // cap on returned matches
	MinResults      int     // fuzzy pass runs only below this many
	ConfidenceFloor float64 // fuzzy candidates under this are dropped
}

const (
	DefaultMaxResults      = 10
	DefaultMinResults      = 5
	DefaultConfidenceFloor = 0.4
)

func (o Options) withDefaults() Options {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.MinResults <= 0 {
		o.MinResults = DefaultMinResults
	}
	if o.ConfidenceFloor <= 0 {
		o.ConfidenceFloor = DefaultConfidenceFloor
	}
	return o
}

// Resolver maps raw text to ranked instrument matches.
type Resolver struct {
	catalog *catalog.Index
	prober  Prober // may be nil
	opts    Options
}

// New creates a resolver over the given catalog. prober may be nil, which
// disables the unknown-symbol probe pass.
func New(idx *catalog.Index, prober Prober, opts Options) *Resolver {
	return &Resolver{catalog: idx, prober: prober, opts: opts.withDefaults()}
}

// Resolve returns matches best-first. An empty result is a normal outcome,
// not an error; only malformed input yields a ValidationError.
func (r *Resolver) Resolve(ctx context.Context, raw string) ([]model.Match, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &ValidationError{Reason: "empty query"}
	}
	if utf8.RuneCountInString(text) > maxQueryLen {
		return nil, &ValidationError{Reason: fmt.Sprintf("query longer than %d characters", maxQueryLen)}
	}
	upper := strings.ToUpper(text)

	// Exact symbol match short-circuits everything else.
	if ins, ok := r.catalog.LookupExact(upper); ok {
		return []model.Match{{
			Symbol:     ins.Symbol,
			Name:       ins.Name,
			Confidence: 1.0,
			Kind:       model.MatchExact,
		}}, nil
	}

	matches := r.prefixPass(text)
	if len(matches) < r.opts.MinResults {
		matches = r.fuzzyPass(text, matches)
	}
	if len(matches) > r.opts.MaxResults {
		matches = matches[:r.opts.MaxResults]
	}

	// Unknown but symbol-shaped input may still be a real ticker the static
	// catalog lacks. The probe result is cached on the metadata TTL.
	if len(matches) == 0 && r.prober != nil && symbolShape.MatchString(upper) {
		if q, ok := r.prober.Probe(ctx, upper); ok {
			matches = append(matches, model.Match{
				Symbol:     q.Symbol,
				Name:       q.Name,
				Confidence: 1.0,
				Kind:       model.MatchExact,
			})
		}
	}
	return matches, nil
}

// prefixPass emits symbol- and name-prefix matches with confidence decaying
// by rank, floored at 0.5.
func (r *Resolver) prefixPass(text string) []model.Match {
	var matches []model.Match
	for rank, ins := range r.catalog.PrefixScan(text) {
		if rank >= r.opts.MaxResults {
			break
		}
		conf := 1.0 - 0.05*float64(rank)
		if conf < 0.5 {
			conf = 0.5
		}
		matches = append(matches, model.Match{
			Symbol:     ins.Symbol,
			Name:       ins.Name,
			Confidence: conf,
			Kind:       model.MatchPrefix,
		})
	}
	return matches
}

// fuzzyPass scores every catalog entry with normalized Levenshtein
// similarity and appends candidates above the floor, best-first, symbols
// breaking ties alphabetically.
func (r *Resolver) fuzzyPass(text string, matches []model.Match) []model.Match {
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		seen[m.Symbol] = true
	}

	type scored struct {
		ins  model.Instrument
		conf float64
	}
	var candidates []scored
	upper := strings.ToUpper(text)
	folded := strings.ToLower(text)
	for _, ins := range r.catalog.All() {
		if seen[ins.Symbol] {
			continue
		}
		conf := similarity(upper, ins.Symbol)
		if nameConf := similarity(folded, strings.ToLower(ins.Name)); nameConf > conf {
			conf = nameConf
		}
		if conf < r.opts.ConfidenceFloor {
			continue
		}
		candidates = append(candidates, scored{ins: ins, conf: conf})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].conf != candidates[j].conf {
			return candidates[i].conf > candidates[j].conf
		}
		return candidates[i].ins.Symbol < candidates[j].ins.Symbol
	})

	for _, c := range candidates {
		if len(matches) >= r.opts.MaxResults {
			break
		}
		conf := c.conf
		// Appended fuzzy results never outrank the prefix tail.
		if n := len(matches); n > 0 && conf > matches[n-1].Confidence {
			conf = matches[n-1].Confidence
		}
		matches = append(matches, model.Match{
			Symbol:     c.ins.Symbol,
			Name:       c.ins.Name,
			Confidence: conf,
			Kind:       model.MatchFuzzy,
		})
	}
	return matches
}

// similarity is edit-distance-normalized: 1 - distance/max(len(a), len(b)).
// Pure and allocation-light so it stays trivially unit-testable.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(d)/float64(longest)
}
