package cli

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "N/A"},
		{0.5, "$0.50"},
		{182.31, "$182.31"},
		{1500, "$1.50K"},
		{2_500_000, "$2.50M"},
		{3_120_000_000, "$3.12B"},
		{2_890_000_000_000, "$2.89T"},
		{-182.31, "-$182.31"},
		{-1500, "-$1.50K"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "N/A"},
		{999, "999"},
		{1500, "1.50K"},
		{42_000_000, "42.00M"},
		{7_800_000_000, "7.80B"},
		{1_200_000_000_000, "1.20T"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
