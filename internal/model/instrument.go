package model

// Category classifies an instrument in the reference catalog.
type Category string

const (
	CategoryEquity Category = "EQUITY"
	CategoryETF    Category = "ETF"
	CategoryIndex  Category = "INDEX"
	CategoryOther  Category = "OTHER"
)

// ParseCategory maps a stored category string to a Category, defaulting to OTHER.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryEquity, CategoryETF, CategoryIndex:
		return Category(s)
	default:
		return CategoryOther
	}
}

// Instrument is one entry of the reference catalog. Immutable once loaded.
type Instrument struct {
	Symbol   string
	Name     string
	Category Category
}

// MatchKind tells how a resolver match was produced.
type MatchKind string

const (
	MatchExact  MatchKind = "EXACT"
	MatchPrefix MatchKind = "PREFIX"
	MatchFuzzy  MatchKind = "FUZZY"
)

// Match is one ranked resolver result. Owned by the caller for one request.
type Match struct {
	Symbol     string
	Name       string
	Confidence float64
	Kind       MatchKind
}
