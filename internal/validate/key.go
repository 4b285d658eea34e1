package validate

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/keyhound/keyhound/internal/model"
)

// stripWhitespace removes all whitespace from a candidate string.
// This is the only normalization key validation performs: case and
// content are never altered, and the artifact's Raw field is untouched.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ValidateKey validates a candidate private key and, on success,
// derives every supported address encoding.
//
// The encoding is chosen by length: 51-52 characters means WIF with
// checksum verification, exactly 64 hex characters means a raw scalar
// (with a warning, since raw hex carries no checksum), anything else
// is a format error. The function always returns a result; errors
// accumulate as strings and never escape.
func ValidateKey(a *model.Artifact) *model.ValidationResult {
	res := &model.ValidationResult{}

	params, ok := netParams(a.Metadata.Currency)
	if !ok {
		res.AddError(fmt.Sprintf("unsupported cryptocurrency: %s", a.Metadata.Currency.Symbol))
		return res
	}

	raw := stripWhitespace(a.Raw)

	var (
		priv       *btcec.PrivateKey
		compressed bool
	)

	switch {
	case len(raw) == 51 || len(raw) == 52:
		wif, err := btcutil.DecodeWIF(raw)
		if err != nil {
			// Decode failure means the checksummed encoding did not
			// verify, whatever the precise cause.
			checksum := false
			res.Checksum = &checksum
			res.AddError(fmt.Sprintf("invalid WIF encoding: %v", err))
			return res
		}
		if !wif.IsForNet(params) {
			res.AddError(fmt.Sprintf("WIF key belongs to a different network than %s %s",
				a.Metadata.Currency.Name, a.Metadata.Currency.Network))
			return res
		}
		checksum := true
		res.Checksum = &checksum
		priv = wif.PrivKey
		compressed = wif.CompressPubKey

	case len(raw) == 64:
		res.AddWarning("raw hex private keys carry no checksum; the WIF encoding is preferred")
		keyBytes, err := hex.DecodeString(raw)
		if err != nil {
			res.AddError("64-character key is not valid hexadecimal")
			return res
		}
		var scalar btcec.ModNScalar
		if overflow := scalar.SetByteSlice(keyBytes); overflow || scalar.IsZero() {
			res.AddError("hex value is not a valid scalar for the secp256k1 curve")
			return res
		}
		priv, _ = btcec.PrivKeyFromBytes(keyBytes)
		// Raw hex carries no compression flag; compressed is the
		// modern default.
		compressed = true

	default:
		res.AddError(fmt.Sprintf("unrecognized private key length %d (expected 51-52 for WIF or 64 for hex)", len(raw)))
		return res
	}

	set := deriveAddressSet(priv.PubKey(), compressed, model.DirectPath, params)
	res.DerivedAddresses = set.addrs
	res.Warnings = append(res.Warnings, set.warns...)

	// A valid key may survive one exotic variant failing, but when the
	// legacy variant fails along with everything else, derivation as a
	// whole failed.
	if set.legacyFailed && len(set.addrs) == 0 {
		for _, e := range set.errs {
			res.AddError(e)
		}
		res.AddError("address derivation failed for every variant")
		return res
	}
	res.Warnings = append(res.Warnings, set.errs...)

	res.IsValid = true
	return res
}
