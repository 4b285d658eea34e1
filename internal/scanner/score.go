package scanner

import (
	"path/filepath"
	"strings"
)

// Confidence scoring bounds. Every score the scanner produces is
// clamped to [MinScore, MaxScore]; 95 is the ceiling because the
// scanner never claims certainty before validation.
const (
	baseScore = 50
	// MinScore is the lowest confidence score the scanner emits.
	MinScore = 0
	// MaxScore is the highest confidence score the scanner emits.
	MaxScore = 95
)

// identifierKeywords earn +20 when the containing identifier (usually
// a file name) suggests key or wallet material.
var identifierKeywords = []string{
	"wallet", "key", "crypto", "seed", "secret", "backup",
}

// currencyNames earn +15 when the identifier names a specific currency.
var currencyNames = []string{
	"bitcoin", "btc", "ethereum", "litecoin", "dogecoin", "monero",
}

// cryptoExtensions earn +10 for file extensions conventionally used by
// wallet software.
var cryptoExtensions = map[string]bool{
	".dat":    true,
	".wallet": true,
	".key":    true,
	".keys":   true,
	".seed":   true,
	".kdbx":   true,
}

// scoreMatch computes the confidence score for one match.
//
// The score starts at 50, adds the category-specific bonus (for example
// +30 when a WIF key's leading character matches expectation), then adds
// origin hints: +20 for a wallet/key/crypto token in the identifier,
// +15 for a currency name, +10 for a crypto-specific file extension.
// The result is clamped to [MinScore, MaxScore].
func scoreMatch(spec patternSpec, text, identifier string) int {
	score := baseScore

	if spec.bonus != nil {
		score += spec.bonus(text)
	}

	lower := strings.ToLower(identifier)
	for _, kw := range identifierKeywords {
		if strings.Contains(lower, kw) {
			score += 20
			break
		}
	}
	for _, name := range currencyNames {
		if strings.Contains(lower, name) {
			score += 15
			break
		}
	}
	if cryptoExtensions[filepath.Ext(lower)] {
		score += 10
	}

	return clampScore(score)
}

// clampScore bounds a score to [MinScore, MaxScore].
func clampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
