package card

import (
	"strconv"
	"strings"
	"time"
)

// Brand identifies the issuing network of a card number.
type Brand string

const (
	BrandVisa       Brand = "Visa"
	BrandMastercard Brand = "Mastercard"
	BrandAmex       Brand = "Amex"
	BrandDinersClub Brand = "Diners Club"
	BrandDiscover   Brand = "Discover"
	BrandUnknown    Brand = "Unknown"
)

// ValidateNumber reports whether number passes the Luhn checksum.
// Spaces are ignored; any other non-digit character fails the check.
func ValidateNumber(number string) bool {
	number = strings.ReplaceAll(number, " ", "")
	if number == "" {
		return false
	}

	total := 0
	// walk digits right to left; every second digit is doubled
	for i := 0; i < len(number); i++ {
		c := number[len(number)-1-i]
		if c < '0' || c > '9' {
			return false
		}
		n := int(c - '0')
		if i%2 == 1 {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		total += n
	}

	return total%10 == 0
}

// Classify returns the card brand derived from the number's prefix.
// The prefix checks are ordered; some prefixes overlap by length so the
// order must not change.
func Classify(number string) Brand {
	number = strings.ReplaceAll(number, " ", "")

	switch {
	case strings.HasPrefix(number, "4"):
		return BrandVisa
	case hasAnyPrefix(number, "51", "52", "53", "54", "55"):
		return BrandMastercard
	case hasAnyPrefix(number, "34", "37"):
		return BrandAmex
	case hasAnyPrefix(number, "300", "301", "302", "303", "304", "305", "36", "38"):
		return BrandDinersClub
	case hasAnyPrefix(number, "6011", "65"):
		return BrandDiscover
	default:
		return BrandUnknown
	}
}

// ValidateExpiry reports whether an "MM/YY" expiry is still in the future.
func ValidateExpiry(expiry string) bool {
	return ValidateExpiryAt(expiry, time.Now().UTC())
}

// ValidateExpiryAt is ValidateExpiry against an explicit reference time.
// The two-digit year is interpreted as 2000+YY and the card is valid while
// the first day of the expiry month is strictly after now. Anything that
// fails to parse is treated as expired.
func ValidateExpiryAt(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return false
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return false
	}

	if month < 1 || month > 12 {
		return false
	}

	ref := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return ref.After(now)
}

// ValidateCVV reports whether cvv is a 3 or 4 digit code.
func ValidateCVV(cvv string) bool {
	if len(cvv) != 3 && len(cvv) != 4 {
		return false
	}
	for i := 0; i < len(cvv); i++ {
		if cvv[i] < '0' || cvv[i] > '9' {
			return false
		}
	}
	return true
}

// LastFour returns the last four digits of a (space-tolerant) card number.
func LastFour(number string) string {
	number = strings.ReplaceAll(number, " ", "")
	if len(number) < 4 {
		return number
	}
	return number[len(number)-4:]
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
