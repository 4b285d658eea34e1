package model

import "strings"

// CryptocurrencyType describes one supported cryptocurrency network.
// Values are immutable and come from the fixed registry below.
type CryptocurrencyType struct {
	// Name is the human-readable currency name, for example "Bitcoin".
	Name string `json:"name"`

	// Symbol is the ticker symbol, for example "BTC".
	Symbol string `json:"symbol"`

	// Network distinguishes mainnet from test networks.
	Network string `json:"network"`

	// CoinType is the BIP44 coin type index used in derivation paths.
	CoinType uint32 `json:"coin_type"`
}

// The fixed currency registry. The engine supports a single curve family
// (secp256k1), so the registry only carries Bitcoin networks.
//
// Design decision: We use package-level values plus a lookup function
// rather than a mutable map because the supported set is small and fixed.
// A closed registry keeps validator dispatch exhaustive.
var (
	// Bitcoin is the Bitcoin mainnet descriptor.
	Bitcoin = CryptocurrencyType{
		Name:     "Bitcoin",
		Symbol:   "BTC",
		Network:  "mainnet",
		CoinType: 0,
	}

	// BitcoinTestnet is the Bitcoin testnet3 descriptor.
	BitcoinTestnet = CryptocurrencyType{
		Name:     "Bitcoin",
		Symbol:   "TBTC",
		Network:  "testnet",
		CoinType: 1,
	}
)

// currencies lists every registry entry in lookup order.
var currencies = []CryptocurrencyType{Bitcoin, BitcoinTestnet}

// LookupCurrency returns the registry entry for a ticker symbol.
// The lookup is case-insensitive. The second return value reports
// whether the symbol is registered.
func LookupCurrency(symbol string) (CryptocurrencyType, bool) {
	for _, c := range currencies {
		if strings.EqualFold(c.Symbol, symbol) {
			return c, true
		}
	}
	return CryptocurrencyType{}, false
}

// Currencies returns a copy of the registry.
func Currencies() []CryptocurrencyType {
	out := make([]CryptocurrencyType, len(currencies))
	copy(out, currencies)
	return out
}
