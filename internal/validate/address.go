package validate

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/keyhound/keyhound/internal/model"
)

// ValidateAddress checks that an already-encoded address decodes
// correctly under the declared currency's rules: base58 checksum for
// legacy forms, witness-program well-formedness for bech32 forms. No
// private key is involved and no addresses are derived.
func ValidateAddress(a *model.Artifact) *model.ValidationResult {
	res := &model.ValidationResult{}

	params, ok := netParams(a.Metadata.Currency)
	if !ok {
		res.AddError(fmt.Sprintf("unsupported cryptocurrency: %s", a.Metadata.Currency.Symbol))
		return res
	}

	raw := stripWhitespace(a.Raw)
	if raw == "" {
		res.AddError("address is empty")
		return res
	}

	decoded, err := btcutil.DecodeAddress(raw, params)
	if err != nil {
		// The decode error is the specific explanation when there is
		// one; the surrounding text is the generic format error.
		res.AddError(fmt.Sprintf("address failed to decode: %v", err))
		return res
	}
	if !decoded.IsForNet(params) {
		res.AddError(fmt.Sprintf("address belongs to a different network than %s %s",
			a.Metadata.Currency.Name, a.Metadata.Currency.Network))
		return res
	}

	checksum := true
	res.Checksum = &checksum
	res.IsValid = true
	return res
}
