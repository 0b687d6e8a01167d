package card

import (
	"testing"
	"time"
)

func TestValidateNumber(t *testing.T) {
	valid := []string{
		"4532015112830366",
		"4111111111111111",
		"4111 1111 1111 1111",
		"5500000000000004",
		"340000000000009",
	}
	for _, n := range valid {
		if !ValidateNumber(n) {
			t.Errorf("expected %q to pass the Luhn check", n)
		}
	}

	invalid := []string{
		"4532015112830367", // one digit altered
		"4111111111111112",
		"4111-1111-1111-1111", // non-digit after space stripping
		"411111111111111a",
		"",
		"    ",
	}
	for _, n := range invalid {
		if ValidateNumber(n) {
			t.Errorf("expected %q to fail the Luhn check", n)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		number string
		want   Brand
	}{
		{"4111111111111111", BrandVisa},
		{"5500000000000004", BrandMastercard},
		{"340000000000009", BrandAmex},
		{"370000000000002", BrandAmex},
		{"30000000000004", BrandDinersClub},
		{"36000000000008", BrandDinersClub},
		{"38000000000006", BrandDinersClub},
		{"6011000000000004", BrandDiscover},
		{"6500000000000002", BrandDiscover},
		{"9999999999999999", BrandUnknown},
		{"5500 0000 0000 0004", BrandMastercard},
	}
	for _, tc := range cases {
		if got := Classify(tc.number); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.number, got, tc.want)
		}
	}
}

func TestValidateExpiryAt(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		expiry string
		want   bool
	}{
		{"01/20", false}, // January 2020, long past
		{"06/24", false}, // first of the current month is not after now
		{"07/24", true},
		{"12/30", true},
		{" 12 / 30 ", true}, // whitespace tolerated around the slash
		{"13/25", false},    // month out of range
		{"00/25", false},
		{"13-25", false}, // wrong separator
		{"1225", false},
		{"aa/bb", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateExpiryAt(tc.expiry, now); got != tc.want {
			t.Errorf("ValidateExpiryAt(%q) = %v, want %v", tc.expiry, got, tc.want)
		}
	}
}

func TestValidateCVV(t *testing.T) {
	cases := []struct {
		cvv  string
		want bool
	}{
		{"123", true},
		{"1234", true},
		{"12", false},
		{"12345", false},
		{"12a", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateCVV(tc.cvv); got != tc.want {
			t.Errorf("ValidateCVV(%q) = %v, want %v", tc.cvv, got, tc.want)
		}
	}
}

func TestLastFour(t *testing.T) {
	if got := LastFour("4111 1111 1111 1111"); got != "1111" {
		t.Fatalf("unexpected last four %q", got)
	}
	if got := LastFour("123"); got != "123" {
		t.Fatalf("unexpected last four for short input %q", got)
	}
}
