package scanner

import (
	"regexp"
	"strings"
)

// PatternCategory identifies one recognized artifact pattern.
//
// Design decision: We use iota-based constants rather than string keys
// so the classifier's category dispatch is exhaustive and statically
// checkable. New categories are added by extending this enum and the
// registry table below, never by runtime registration.
type PatternCategory int

const (
	// PatternWIFKey is a wallet-import-format private key: base58check,
	// 51-52 characters, leading character 5, K, or L on mainnet.
	PatternWIFKey PatternCategory = iota

	// PatternHexKey is a raw hexadecimal private key of exactly 64
	// hex characters.
	PatternHexKey

	// PatternLegacyAddress is a base58check address of 25-34 characters
	// with leading character 1 or 3.
	PatternLegacyAddress

	// PatternBech32Address is a segwit address: "bc1" prefix followed
	// by 39-59 characters from the bech32 alphabet.
	PatternBech32Address

	// PatternHexAddress is a hex-prefixed address or key: "0x" followed
	// by exactly 40 or 64 hex characters.
	PatternHexAddress

	// PatternMnemonic is a sequence of 12-24 lowercase words, a
	// candidate BIP39 seed phrase.
	PatternMnemonic

	// PatternWalletFile is a file whose name contains wallet-related
	// vocabulary. Matched against names, not content.
	PatternWalletFile

	// PatternBase58Blob is the catch-all: any base58 run of 25 or more
	// characters not already claimed by a more specific pattern.
	PatternBase58Blob
)

// String returns the category's stable name.
func (c PatternCategory) String() string {
	switch c {
	case PatternWIFKey:
		return "wif_key"
	case PatternHexKey:
		return "hex_key"
	case PatternLegacyAddress:
		return "legacy_address"
	case PatternBech32Address:
		return "bech32_address"
	case PatternHexAddress:
		return "hex_address"
	case PatternMnemonic:
		return "mnemonic"
	case PatternWalletFile:
		return "wallet_file"
	case PatternBase58Blob:
		return "base58_blob"
	default:
		return "unknown"
	}
}

// patternSpec couples a category with its matcher and its
// category-specific score bonus.
type patternSpec struct {
	category PatternCategory
	pattern  *regexp.Regexp

	// bonus returns the category-specific score bonus for a match.
	// Nil means no bonus beyond the base score.
	bonus func(text string) int
}

// patternTable is the fixed pattern registry in match-priority order.
// More specific patterns come first so deduplication prefers them over
// the base58 catch-all.
//
// PatternWalletFile is absent on purpose: it matches file names, not
// content, and is handled by MatchFileName.
var patternTable = []patternSpec{
	{
		category: PatternWIFKey,
		pattern:  regexp.MustCompile(`\b[5KL][1-9A-HJ-NP-Za-km-z]{50,51}\b`),
		bonus: func(text string) int {
			// Mainnet WIF keys start with 5 (uncompressed) or K/L
			// (compressed).
			if strings.IndexByte("5KL", text[0]) >= 0 {
				return 30
			}
			return 0
		},
	},
	{
		category: PatternHexAddress,
		pattern:  regexp.MustCompile(`\b0x(?:[0-9a-fA-F]{64}|[0-9a-fA-F]{40})\b`),
		bonus: func(text string) int {
			if strings.HasPrefix(text, "0x") {
				return 25
			}
			return 0
		},
	},
	{
		category: PatternHexKey,
		pattern:  regexp.MustCompile(`\b[0-9a-fA-F]{64}\b`),
	},
	{
		category: PatternBech32Address,
		pattern:  regexp.MustCompile(`\bbc1[a-z0-9]{39,59}\b`),
	},
	{
		category: PatternLegacyAddress,
		pattern:  regexp.MustCompile(`\b[13][1-9A-HJ-NP-Za-km-z]{24,33}\b`),
	},
	{
		category: PatternMnemonic,
		pattern:  regexp.MustCompile(`\b[a-z]+(?: [a-z]+){11,23}\b`),
		bonus: func(text string) int {
			if len(strings.Fields(text)) >= 12 {
				return 35
			}
			return 0
		},
	},
	{
		category: PatternBase58Blob,
		pattern:  regexp.MustCompile(`\b[1-9A-HJ-NP-Za-km-z]{25,}\b`),
	},
}

// walletFileMarkers is the fixed vocabulary of wallet-related substrings
// checked against file names.
var walletFileMarkers = []string{
	"wallet",
	"keystore",
	"keyfile",
	"privkey",
	"private_key",
	"mnemonic",
	"seed",
	"electrum",
	"metamask",
	"exodus",
	"bitcoin",
	"utxo",
}
