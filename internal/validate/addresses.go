package validate

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/keyhound/keyhound/internal/model"
)

// netParams maps a registry currency to its chain parameters.
// The second return value is false for unsupported currencies.
func netParams(c model.CryptocurrencyType) (*chaincfg.Params, bool) {
	switch c.Symbol {
	case "BTC":
		return &chaincfg.MainNetParams, true
	case "TBTC":
		return &chaincfg.TestNet3Params, true
	default:
		return nil, false
	}
}

// addressSet is the outcome of deriving all address variants from one
// public key. Variant failures are independent: a failed variant adds
// to errs (or warns for taproot) without stopping the others.
type addressSet struct {
	addrs []model.DerivedAddress
	errs  []string
	warns []string

	// legacyFailed tracks the legacy variant separately because its
	// failure combined with all others failing means derivation as a
	// whole failed.
	legacyFailed bool
}

// deriveAddressSet generates every supported address variant for a
// public key, in fixed order: legacy P2PKH, native segwit P2WPKH,
// wrapped segwit P2SH-P2WPKH, then taproot P2TR.
//
// The public key is used in compressed form for all segwit variants;
// the legacy variant honors the key's original form since P2PKH is
// defined for both. Taproot failure is best-effort: the variant is
// omitted with a warning and never affects the others.
func deriveAddressSet(pub *btcec.PublicKey, compressed bool, path string, params *chaincfg.Params) addressSet {
	var set addressSet

	compressedBytes := pub.SerializeCompressed()
	pubHex := hex.EncodeToString(compressedBytes)

	legacyBytes := compressedBytes
	if !compressed {
		legacyBytes = pub.SerializeUncompressed()
		pubHex = hex.EncodeToString(legacyBytes)
	}

	if addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(legacyBytes), params); err != nil {
		set.errs = append(set.errs, fmt.Sprintf("legacy address derivation failed: %v", err))
		set.legacyFailed = true
	} else {
		set.addrs = append(set.addrs, model.DerivedAddress{
			Address:   addr.EncodeAddress(),
			Path:      path,
			Type:      model.AddressLegacy,
			PublicKey: pubHex,
		})
	}

	witnessProg := btcutil.Hash160(compressedBytes)

	if addr, err := btcutil.NewAddressWitnessPubKeyHash(witnessProg, params); err != nil {
		set.errs = append(set.errs, fmt.Sprintf("native segwit address derivation failed: %v", err))
	} else {
		set.addrs = append(set.addrs, model.DerivedAddress{
			Address:   addr.EncodeAddress(),
			Path:      path,
			Type:      model.AddressNativeSegwit,
			PublicKey: pubHex,
		})
	}

	if addr, err := wrappedSegwitAddress(witnessProg, params); err != nil {
		set.errs = append(set.errs, fmt.Sprintf("wrapped segwit address derivation failed: %v", err))
	} else {
		set.addrs = append(set.addrs, model.DerivedAddress{
			Address:   addr.EncodeAddress(),
			Path:      path,
			Type:      model.AddressWrappedSegwit,
			PublicKey: pubHex,
		})
	}

	if addr, err := taprootAddress(pub, params); err != nil {
		// Best-effort: omit the variant, keep validity intact.
		set.warns = append(set.warns, fmt.Sprintf("taproot address derivation skipped: %v", err))
	} else {
		set.addrs = append(set.addrs, model.DerivedAddress{
			Address:   addr.EncodeAddress(),
			Path:      path,
			Type:      model.AddressTaproot,
			PublicKey: pubHex,
		})
	}

	return set
}

// wrappedSegwitAddress builds the P2SH address whose redeem script is
// the P2WPKH witness program (BIP49).
func wrappedSegwitAddress(witnessProg []byte, params *chaincfg.Params) (btcutil.Address, error) {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(witnessProg).
		Script()
	if err != nil {
		return nil, err
	}
	return btcutil.NewAddressScriptHash(script, params)
}

// taprootAddress builds the witness-version-1 address from the x-only
// coordinate of the BIP341-tweaked public key.
func taprootAddress(pub *btcec.PublicKey, params *chaincfg.Params) (btcutil.Address, error) {
	tweaked := txscript.ComputeTaprootKeyNoScript(pub)
	return btcutil.NewAddressTaproot(schnorr.SerializePubKey(tweaked), params)
}
