package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"TickerDesk/internal/model"
)

func TestBuiltin_SizeAndValidity(t *testing.T) {
	list := Builtin()
	if len(list) < 200 {
		t.Fatalf("builtin dataset has %d entries, want >= 200", len(list))
	}
	idx, err := New(list)
	if err != nil {
		t.Fatalf("New(Builtin()) failed: %v", err)
	}
	if idx.Len() != len(list) {
		t.Errorf("Len = %d, want %d", idx.Len(), len(list))
	}

	categories := map[model.Category]int{}
	for _, ins := range list {
		categories[ins.Category]++
	}
	for _, c := range []model.Category{model.CategoryEquity, model.CategoryETF, model.CategoryIndex} {
		if categories[c] == 0 {
			t.Errorf("builtin dataset has no %s entries", c)
		}
	}
}

func TestNew_RejectsDuplicateSymbol(t *testing.T) {
	_, err := New([]model.Instrument{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "aapl", Name: "Apple again"},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("want duplicate symbol error, got %v", err)
	}
}

func TestNew_RejectsEmptySymbol(t *testing.T) {
	_, err := New([]model.Instrument{{Symbol: "  ", Name: "nameless"}})
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("want empty symbol error, got %v", err)
	}
}

func TestLookupExact(t *testing.T) {
	idx, err := New(Builtin())
	if err != nil {
		t.Fatal(err)
	}
	ins, ok := idx.LookupExact("aapl")
	if !ok || ins.Symbol != "AAPL" {
		t.Fatalf("LookupExact(aapl) = (%v, %v)", ins, ok)
	}
	if _, ok := idx.LookupExact("ZZZZZ"); ok {
		t.Error("LookupExact on unknown symbol reported a hit")
	}
}

func TestPrefixScan_SymbolMatchesFirst(t *testing.T) {
	idx, err := New([]model.Instrument{
		{Symbol: "APD", Name: "Air Products and Chemicals Inc."},
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
		{Symbol: "APP", Name: "AppLovin Corporation"},
	})
	if err != nil {
		t.Fatal(err)
	}

	got := idx.PrefixScan("ap")
	if len(got) != 3 {
		t.Fatalf("PrefixScan(ap) returned %d entries, want 3", len(got))
	}
	// Symbol-prefix matches (APD, APP) in symbol order, then the
	// name-prefix match (AAPL, "Apple...").
	wantOrder := []string{"APD", "APP", "AAPL"}
	for i, w := range wantOrder {
		if got[i].Symbol != w {
			t.Errorf("PrefixScan(ap)[%d] = %s, want %s", i, got[i].Symbol, w)
		}
	}

	if got := idx.PrefixScan(""); got != nil {
		t.Errorf("PrefixScan(empty) = %v, want nil", got)
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")

	orig := []model.Instrument{
		{Symbol: "AAPL", Name: "Apple Inc.", Category: model.CategoryEquity},
		{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", Category: model.CategoryETF},
		{Symbol: "^GSPC", Name: "S&P 500", Category: model.CategoryIndex},
	}
	if err := WriteFile(path, orig); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(got) != len(orig) {
		t.Fatalf("loaded %d entries, want %d", len(got), len(orig))
	}
	for i := range orig {
		if got[i] != orig[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], orig[i])
		}
	}
}

func TestLoadOrInit_SeedsMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "catalog.csv")

	idx, err := LoadOrInit(path)
	if err != nil {
		t.Fatalf("LoadOrInit: %v", err)
	}
	if idx.Len() < 200 {
		t.Errorf("seeded index has %d entries, want >= 200", idx.Len())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("catalog file not seeded: %v", err)
	}
}
