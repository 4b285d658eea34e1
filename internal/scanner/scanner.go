package scanner

import (
	"strings"
	"unicode/utf8"
)

// Match is one candidate artifact discovered by the scanner.
type Match struct {
	// Category is the pattern category that matched.
	Category PatternCategory `json:"category"`

	// Text is the matched text, verbatim.
	Text string `json:"text"`

	// Identifier names the containing content, usually a file path.
	Identifier string `json:"identifier"`

	// Score is the confidence score in [0, 95].
	Score int `json:"score"`
}

// Confidence returns the match score as a fraction in [0, 0.95],
// the form carried on artifact metadata.
func (m Match) Confidence() float64 {
	return float64(m.Score) / 100
}

// ScanContent applies the pattern registry to text content and returns
// every match found, scored and deduplicated.
//
// Content that is not valid UTF-8 is treated as non-matching binary
// data and produces no matches and no error; the engine only scans
// text. The identifier is used for origin-based score bonuses and is
// carried through to the matches.
//
// Deduplication: a piece of matched text is claimed by the first
// (most specific) category that matches it. The base58 catch-all never
// re-reports text already claimed by the WIF or legacy-address
// patterns, and repeated occurrences of the same text are reported once.
func ScanContent(content, identifier string) []Match {
	if !utf8.ValidString(content) {
		return nil
	}

	matches := make([]Match, 0)
	seen := make(map[string]bool)

	for _, spec := range patternTable {
		for _, text := range spec.pattern.FindAllString(content, -1) {
			if seen[text] {
				continue
			}
			seen[text] = true

			matches = append(matches, Match{
				Category:   spec.category,
				Text:       text,
				Identifier: identifier,
				Score:      scoreMatch(spec, text, identifier),
			})
		}
	}

	return matches
}

// MatchFileName checks a file name against the wallet-file vocabulary.
// It returns the match and true when the name contains a wallet-related
// marker, or the zero Match and false otherwise.
func MatchFileName(name string) (Match, bool) {
	lower := strings.ToLower(name)
	for _, marker := range walletFileMarkers {
		if strings.Contains(lower, marker) {
			spec := patternSpec{category: PatternWalletFile}
			return Match{
				Category:   PatternWalletFile,
				Text:       name,
				Identifier: name,
				Score:      scoreMatch(spec, name, name),
			}, true
		}
	}
	return Match{}, false
}
