package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafeParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid integer", "100", "100"},
		{"valid decimal", "3.14", "3.14"},
		{"zero", "0", "0"},
		{"negative", "-5.5", "-5.5"},
		{"empty string", "", "0"},
		{"invalid string", "abc", "0"},
		{"small fraction", "0.0000001", "0.0000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeParse(tt.input)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("SafeParse(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("120.0000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(120)) {
		t.Errorf("ParseAmount = %s, want 120", got)
	}

	if _, err := ParseAmount("not_a_number"); err == nil {
		t.Error("expected error for malformed amount")
	}
	if _, err := ParseAmount(""); err == nil {
		t.Error("expected error for empty amount")
	}
}

func TestRounding(t *testing.T) {
	tests := []struct {
		name  string
		round func(decimal.Decimal) decimal.Decimal
		in    string
		want  string
	}{
		{"usd half up", RoundUSD, "2.345", "2.35"},
		{"usd down", RoundUSD, "2.344", "2.34"},
		{"usd exact", RoundUSD, "12", "12"},
		{"native half up", RoundNative, "118.499995", "118.5"},
		{"native down", RoundNative, "118.499994", "118.49999"},
		{"native exact", RoundNative, "118.49999", "118.49999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.round(decimal.RequireFromString(tt.in))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("round(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatStellar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.1000000", "1.1"},
		{"0.00000005", "0.0000001"},
		{"6", "6"},
		{"118.49999", "118.49999"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatStellar(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("FormatStellar(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
