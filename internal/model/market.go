package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is a bounded view over a raw bar sequence. Points are chronological.
// Sampled is true whenever TotalRawCount exceeded the point cap and the older
// portion of the series was thinned. The raw series stays cached; a Series is
// rebuilt per request.
type Series struct {
	Symbol        string
	Period        Period
	Points        []OHLCV
	TotalRawCount int
	Sampled       bool
}

// Quote carries upstream instrument metadata plus the most recent price.
// The last price is provisional for the current trading day.
type Quote struct {
	Symbol    string
	Name      string
	Category  Category
	LastPrice float64
	AsOf      time.Time
}
