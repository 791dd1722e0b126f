package resolve

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"TickerDesk/internal/catalog"
	"TickerDesk/internal/model"
)

func testIndex(t *testing.T) *catalog.Index {
	t.Helper()
	idx, err := catalog.New(catalog.Builtin())
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

// fakeProber records probe calls and knows a fixed set of symbols.
type fakeProber struct {
	mu     sync.Mutex
	calls  int
	known  map[string]model.Quote
	cached map[string]model.Quote
}

func (p *fakeProber) Probe(_ context.Context, symbol string) (model.Quote, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if q, ok := p.cached[symbol]; ok {
		return q, true
	}
	p.calls++
	q, ok := p.known[symbol]
	if ok {
		if p.cached == nil {
			p.cached = make(map[string]model.Quote)
		}
		p.cached[symbol] = q
	}
	return q, ok
}

func TestResolve_ExactShortCircuits(t *testing.T) {
	r := New(testIndex(t), nil, Options{})
	for _, sym := range []string{"AAPL", "msft", " Spy ", "BRK.B"} {
		got, err := r.Resolve(context.Background(), sym)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", sym, err)
		}
		if len(got) != 1 {
			t.Fatalf("Resolve(%q) returned %d matches, want exactly 1", sym, len(got))
		}
		m := got[0]
		if m.Kind != model.MatchExact || m.Confidence != 1.0 {
			t.Errorf("Resolve(%q) = %+v, want EXACT with confidence 1.0", sym, m)
		}
		if m.Symbol != strings.ToUpper(strings.TrimSpace(sym)) {
			t.Errorf("Resolve(%q) symbol = %s", sym, m.Symbol)
		}
	}
}

func TestResolve_EveryCatalogSymbolIsExact(t *testing.T) {
	idx := testIndex(t)
	r := New(idx, nil, Options{})
	for _, ins := range idx.All() {
		got, err := r.Resolve(context.Background(), ins.Symbol)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", ins.Symbol, err)
		}
		if len(got) != 1 || got[0].Kind != model.MatchExact || got[0].Confidence != 1.0 {
			t.Fatalf("Resolve(%s) = %+v, want single EXACT at 1.0", ins.Symbol, got)
		}
	}
}

func TestResolve_ConfidencesNonIncreasing(t *testing.T) {
	r := New(testIndex(t), nil, Options{})
	for _, q := range []string{"A", "AP", "micro", "bank", "vanguard", "XL", "oil", "APPL", "tesl"} {
		got, err := r.Resolve(context.Background(), q)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", q, err)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Confidence > got[i-1].Confidence {
				t.Errorf("Resolve(%q): confidence increases at %d: %.3f -> %.3f",
					q, i, got[i-1].Confidence, got[i].Confidence)
			}
		}
	}
}

func TestResolve_PrefixRanking(t *testing.T) {
	r := New(testIndex(t), nil, Options{MaxResults: 10})
	got, err := r.Resolve(context.Background(), "XL")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("no matches for XL")
	}
	if got[0].Kind != model.MatchPrefix || got[0].Confidence != 1.0 {
		t.Errorf("top match = %+v, want PREFIX at 1.0", got[0])
	}
	for _, m := range got {
		if m.Kind == model.MatchPrefix && m.Confidence < 0.5 {
			t.Errorf("prefix confidence %.3f below floor 0.5", m.Confidence)
		}
	}
	if len(got) > 10 {
		t.Errorf("got %d matches, max is 10", len(got))
	}
}

func TestResolve_MisspelledSymbol(t *testing.T) {
	// "APPL" against a catalog containing AAPL / Apple Inc. must surface
	// AAPL on top with usable confidence.
	r := New(testIndex(t), nil, Options{})
	got, err := r.Resolve(context.Background(), "APPL")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("no matches for APPL")
	}
	if got[0].Symbol != "AAPL" {
		t.Errorf("top match = %s, want AAPL", got[0].Symbol)
	}
	if got[0].Confidence < 0.4 {
		t.Errorf("confidence %.3f below 0.4", got[0].Confidence)
	}
}

func TestResolve_FuzzyFloorAndTieBreak(t *testing.T) {
	idx, err := catalog.New([]model.Instrument{
		{Symbol: "AMD", Name: "Advanced Micro Devices Inc."},
		{Symbol: "AMT", Name: "American Tower Corporation"},
		{Symbol: "XOM", Name: "Exxon Mobil Corporation"},
	})
	if err != nil {
		t.Fatal(err)
	}
	r := New(idx, nil, Options{ConfidenceFloor: 0.4})

	// "AMP" is one edit from both AMD and AMT (similarity 2/3) and far from
	// XOM (0), which sits below the floor.
	got, err := r.Resolve(context.Background(), "AMP")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2 (XOM below floor): %+v", len(got), got)
	}
	for _, m := range got {
		if m.Kind != model.MatchFuzzy {
			t.Errorf("match %s kind = %s, want FUZZY", m.Symbol, m.Kind)
		}
		if m.Confidence < 0.4 {
			t.Errorf("match %s confidence %.3f below floor", m.Symbol, m.Confidence)
		}
	}
	// Equal scores break alphabetically.
	if got[0].Symbol != "AMD" || got[1].Symbol != "AMT" {
		t.Errorf("tie-break order = %s, %s; want AMD, AMT", got[0].Symbol, got[1].Symbol)
	}
}

func TestResolve_ValidationErrors(t *testing.T) {
	r := New(testIndex(t), nil, Options{})

	for _, q := range []string{"", "   ", strings.Repeat("A", 65), strings.Repeat("é", 65)} {
		_, err := r.Resolve(context.Background(), q)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Resolve(%q) error = %v, want ValidationError", q, err)
		}
	}

	// The length limit counts runes, not bytes: 30 multi-byte characters are
	// well inside it even though they exceed 64 bytes.
	if _, err := r.Resolve(context.Background(), strings.Repeat("é", 30)); err != nil {
		t.Errorf("30-rune query rejected: %v", err)
	}
}

func TestResolve_UnknownReturnsEmptyNotError(t *testing.T) {
	r := New(testIndex(t), nil, Options{})
	got, err := r.Resolve(context.Background(), "qqqqqqqzzzzzzz")
	if err != nil {
		t.Fatalf("unknown input must not error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d matches for gibberish, want 0", len(got))
	}
}

func TestResolve_ProbeAcceptsUnknownSymbol(t *testing.T) {
	// Catalog deliberately far from "IONQ" so every pass comes up empty and
	// the probe path is the only way in.
	idx, err := catalog.New([]model.Instrument{
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
		{Symbol: "GOOGL", Name: "Alphabet Inc. Class A"},
	})
	if err != nil {
		t.Fatal(err)
	}
	p := &fakeProber{known: map[string]model.Quote{
		"IONQ": {Symbol: "IONQ", Name: "IonQ Inc.", LastPrice: 10},
	}}
	r := New(idx, p, Options{})

	got, err := r.Resolve(context.Background(), "ionq")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Symbol != "IONQ" || got[0].Kind != model.MatchExact {
		t.Fatalf("probe match = %+v", got)
	}

	// Second resolve hits the probe cache, no second upstream call.
	if _, err := r.Resolve(context.Background(), "IONQ"); err != nil {
		t.Fatal(err)
	}
	if p.calls != 1 {
		t.Errorf("probe upstream calls = %d, want 1", p.calls)
	}
}

func TestResolve_ProbeSkippedForNonSymbolShapes(t *testing.T) {
	p := &fakeProber{}
	r := New(testIndex(t), p, Options{})

	for _, q := range []string{"not a ticker", "TOOLONGG", "ab1"} {
		got, err := r.Resolve(context.Background(), q)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", q, err)
		}
		_ = got
	}
	if p.calls != 0 {
		t.Errorf("probe called %d times for non-symbol-shaped input, want 0", p.calls)
	}
}

func TestResolve_EmptyCatalog(t *testing.T) {
	idx, err := catalog.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	p := &fakeProber{known: map[string]model.Quote{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc."},
	}}
	r := New(idx, p, Options{})

	got, err := r.Resolve(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Symbol != "AAPL" {
		t.Fatalf("probe path must work on empty catalog, got %+v", got)
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"AAPL", "AAPL", 1.0},
		{"APPL", "AAPL", 0.75}, // one substitution over length 4
		{"APL", "AAPL", 0.75},  // one insertion over length 4
		{"AMP", "AMD", 2.0 / 3.0},
		{"AMP", "XOM", 0.0},
	}
	for _, tt := range tests {
		if got := similarity(tt.a, tt.b); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("similarity(%q, %q) = %.4f, want %.4f", tt.a, tt.b, got, tt.want)
		}
	}
}
