package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RewardFactor is the number of reward milliunits in one whole token.
const RewardFactor = 1000

// RewardAmount is a fixed-point token amount with three decimal places, stored as an
// integer count of milliunits. Amounts never pass through a float.
type RewardAmount int64

// ParseRewardAmount converts a decimal string such as "1.2345" to a RewardAmount.
// Digits beyond the third decimal place are truncated toward zero, not rounded.
func ParseRewardAmount(s string) (RewardAmount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty amount")
	}

	digits := s
	neg := false
	if digits[0] == '+' || digits[0] == '-' {
		neg = digits[0] == '-'
		digits = digits[1:]
	}

	whole, frac := digits, ""
	hasDot := false
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		hasDot = true
		whole, frac = digits[:i], digits[i+1:]
	}

	// both parts must be plain digit runs; a dot needs digits after it
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if hasDot && frac == "" {
		return 0, fmt.Errorf("invalid amount %q: no digits after the decimal point", s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	if whole == "" {
		whole = "0"
	}
	if len(frac) > 3 {
		frac = frac[:3]
	}
	for len(frac) < 3 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	n := w*RewardFactor + f
	if neg {
		n = -n
	}
	return RewardAmount(n), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats the amount as a decimal string with exactly three decimal places.
func (r RewardAmount) String() string {
	n := int64(r)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%03d", sign, n/RewardFactor, n%RewardFactor)
}

// MarshalJSON renders the amount as a quoted decimal string, e.g. "1.250"
func (r RewardAmount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

func (r *RewardAmount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	parsed, err := ParseRewardAmount(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
