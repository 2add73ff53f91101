package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MaxAmericanOdds bounds the magnitude of odds accepted on submission and of
// derived parlay odds.
const MaxAmericanOdds = 1_000_000

var americanOddsPattern = regexp.MustCompile(`^[+-]?\d+$`)

// WithinOddsLimit reports whether odds fall inside ±MaxAmericanOdds.
func WithinOddsLimit(odds int) bool {
	return odds >= -MaxAmericanOdds && odds <= MaxAmericanOdds
}

// ParseAmericanOdds returns the signed odds value of a string such as "+250"
// or "-110", or of an already parsed number. Anything else, including free
// text bracket labels, reports false.
func ParseAmericanOdds(input any) (int, bool) {
	switch v := input.(type) {
	case nil:
		return 0, false
	case string:
		return parseOddsString(v)
	case *string:
		if v == nil {
			return 0, false
		}
		return parseOddsString(*v)
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case *int:
		if v == nil {
			return 0, false
		}
		return *v, true
	case float32:
		return parseOddsFloat(float64(v))
	case float64:
		return parseOddsFloat(v)
	default:
		return 0, false
	}
}

func parseOddsString(raw string) (int, bool) {
	value := strings.TrimSpace(raw)
	value = strings.ReplaceAll(value, "−", "-")
	switch strings.ToLower(value) {
	case "even", "ev", "evs":
		return 100, true
	}
	if !americanOddsPattern.MatchString(value) {
		return 0, false
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return out, true
}

func parseOddsFloat(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}

// ParlayOdds combines leg odds into the American odds of the whole parlay.
// The result is clamped to ±MaxAmericanOdds.
func ParlayOdds(legs []string) (int, bool) {
	if len(legs) == 0 {
		return 0, false
	}

	decimal := 1.0
	for _, leg := range legs {
		odds, ok := ParseAmericanOdds(leg)
		if !ok || odds == 0 {
			return 0, false
		}
		decimal *= decimalFromAmerican(odds)
	}

	if math.IsNaN(decimal) {
		return 0, false
	}
	return americanFromDecimal(decimal), true
}

func decimalFromAmerican(odds int) float64 {
	if odds > 0 {
		return 1 + float64(odds)/100
	}
	return 1 + 100/float64(-odds)
}

func americanFromDecimal(decimal float64) int {
	profit := decimal - 1
	switch {
	case profit >= 1:
		return int(math.Round(math.Min(profit*100, MaxAmericanOdds)))
	case profit <= 0:
		return -MaxAmericanOdds
	default:
		return -int(math.Round(math.Min(100/profit, MaxAmericanOdds)))
	}
}
