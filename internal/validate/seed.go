package validate

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"

	"github.com/keyhound/keyhound/internal/model"
)

// validWordCounts are the BIP39 phrase lengths. The entropy in bits is
// wordCount/3*32, so the mapping 12→128 ... 24→256 falls out of the
// count itself.
var validWordCounts = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

// derivationPurposes lists the canonical first-address derivation paths
// walked for a valid seed, in fixed order: BIP44 legacy, BIP49 wrapped
// segwit, BIP84 native segwit. The purpose constants follow BIP43.
var derivationPurposes = []uint32{44, 49, 84}

// derivationPath renders the first-address path for a purpose and coin
// type, e.g. m/84'/0'/0'/0/0.
func derivationPath(purpose, coinType uint32) string {
	return fmt.Sprintf("m/%d'/%d'/0'/0/0", purpose, coinType)
}

// ValidateSeed validates a candidate mnemonic phrase and derives
// addresses along the canonical first-address paths.
//
// Normalization is read-only: the phrase is NFKD-normalized, trimmed,
// lowercased, and split on whitespace; the artifact's Raw field is
// never altered. Checksum failure is a hard invalidity. A failure on
// one derivation path never aborts the others, and validity depends
// only on the checksum, not on derivation succeeding.
func ValidateSeed(a *model.Artifact) *model.ValidationResult {
	res := &model.ValidationResult{}

	params, ok := netParams(a.Metadata.Currency)
	if !ok {
		res.AddError(fmt.Sprintf("unsupported cryptocurrency: %s", a.Metadata.Currency.Symbol))
		return res
	}

	words := strings.Fields(strings.ToLower(norm.NFKD.String(strings.TrimSpace(a.Raw))))
	if !validWordCounts[len(words)] {
		res.AddError(fmt.Sprintf("invalid word count %d (expected 12, 15, 18, 21, or 24)", len(words)))
		return res
	}

	mnemonic := strings.Join(words, " ")
	if _, err := bip39.EntropyFromMnemonic(mnemonic); err != nil {
		checksum := false
		res.Checksum = &checksum
		res.AddError(fmt.Sprintf("mnemonic checksum verification failed: %v", err))
		return res
	}
	checksum := true
	res.Checksum = &checksum
	res.Entropy = len(words) / 3 * 32

	// No passphrase support at this layer; absence equals the empty
	// passphrase per BIP39.
	seed := bip39.NewSeed(mnemonic, "")

	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		res.AddWarning(fmt.Sprintf("master key derivation failed: %v", err))
		res.IsValid = true
		return res
	}

	coinType := a.Metadata.Currency.CoinType
	for _, purpose := range derivationPurposes {
		path := derivationPath(purpose, coinType)

		child, err := deriveFirstAddressKey(master, purpose, coinType)
		if err != nil {
			res.AddWarning(fmt.Sprintf("derivation failed for %s: %v", path, err))
			continue
		}
		priv, err := child.ECPrivKey()
		if err != nil {
			res.AddWarning(fmt.Sprintf("private key extraction failed for %s: %v", path, err))
			continue
		}

		set := deriveAddressSet(priv.PubKey(), true, path, params)
		res.DerivedAddresses = append(res.DerivedAddresses, set.addrs...)
		res.Warnings = append(res.Warnings, set.warns...)
		res.Warnings = append(res.Warnings, set.errs...)
	}

	// Validity follows the checksum alone; derivation is best-effort.
	res.IsValid = true
	return res
}

// deriveFirstAddressKey walks m/purpose'/coinType'/0'/0/0 from the
// master key.
func deriveFirstAddressKey(master *hdkeychain.ExtendedKey, purpose, coinType uint32) (*hdkeychain.ExtendedKey, error) {
	indices := []uint32{
		hdkeychain.HardenedKeyStart + purpose,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart, // account 0'
		0,                           // external chain
		0,                           // first address
	}

	key := master
	for _, index := range indices {
		var err error
		key, err = key.Derive(index)
		if err != nil {
			return nil, err
		}
	}
	return key, nil
}
