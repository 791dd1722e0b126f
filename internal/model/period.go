package model

import (
	"fmt"
	"sort"
	"strings"
)

// Period is an upstream history range. The values mirror the Yahoo chart API
// range parameter, which the self-hosted source accepts as well.
type Period string

const (
	Period1D  Period = "1d"
	Period5D  Period = "5d"
	Period1M  Period = "1mo"
	Period3M  Period = "3mo"
	Period6M  Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	Period10Y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

var validPeriods = map[Period]bool{
	Period1D: true, Period5D: true, Period1M: true, Period3M: true,
	Period6M: true, Period1Y: true, Period2Y: true, Period5Y: true,
	Period10Y: true, PeriodYTD: true, PeriodMax: true,
}

// ParsePeriod validates a user-supplied period string.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !validPeriods[p] {
		return "", fmt.Errorf("invalid period %q (valid: %s)", s, strings.Join(PeriodNames(), " "))
	}
	return p, nil
}

// PeriodNames lists the accepted period strings, sorted.
func PeriodNames() []string {
	names := make([]string, 0, len(validPeriods))
	for p := range validPeriods {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}
