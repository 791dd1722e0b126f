// Package catalog holds the immutable reference table of known instruments.
// The index is built once at startup from the builtin dataset or an on-disk
// CSV catalog and is read-only afterwards, so lookups need no locking.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"TickerDesk/internal/model"
)

// Index is the in-memory instrument table.
type Index struct {
	bySymbol map[string]model.Instrument
	ordered  []model.Instrument // sorted by symbol
}

// New validates and indexes the given instruments. A duplicate or empty
// symbol is a fatal initialization error, never a runtime one.
func New(list []model.Instrument) (*Index, error) {
	idx := &Index{
		bySymbol: make(map[string]model.Instrument, len(list)),
		ordered:  make([]model.Instrument, 0, len(list)),
	}
	for i, ins := range list {
		sym := strings.ToUpper(strings.TrimSpace(ins.Symbol))
		if sym == "" {
			return nil, fmt.Errorf("catalog entry %d: empty symbol", i)
		}
		if _, dup := idx.bySymbol[sym]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate symbol %s", i, sym)
		}
		ins.Symbol = sym
		idx.bySymbol[sym] = ins
		idx.ordered = append(idx.ordered, ins)
	}
	sort.Slice(idx.ordered, func(i, j int) bool { return idx.ordered[i].Symbol < idx.ordered[j].Symbol })
	return idx, nil
}

// LookupExact returns the instrument whose symbol equals text (case-insensitive).
func (x *Index) LookupExact(text string) (model.Instrument, bool) {
	ins, ok := x.bySymbol[strings.ToUpper(strings.TrimSpace(text))]
	return ins, ok
}

// PrefixScan returns instruments whose symbol or display name starts with
// text, most relevant first: symbol-prefix matches in symbol order, then
// name-prefix matches in symbol order. Comparison is case-folded.
func (x *Index) PrefixScan(text string) []model.Instrument {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	upper := strings.ToUpper(text)
	folded := strings.ToLower(text)

	var bySym, byName []model.Instrument
	for _, ins := range x.ordered {
		switch {
		case strings.HasPrefix(ins.Symbol, upper):
			bySym = append(bySym, ins)
		case strings.HasPrefix(strings.ToLower(ins.Name), folded):
			byName = append(byName, ins)
		}
	}
	return append(bySym, byName...)
}

// All returns a read-only snapshot of every instrument, sorted by symbol.
func (x *Index) All() []model.Instrument {
	out := make([]model.Instrument, len(x.ordered))
	copy(out, x.ordered)
	return out
}

// Len reports the number of catalog entries.
func (x *Index) Len() int { return len(x.ordered) }
