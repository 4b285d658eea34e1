package model

// AddressType identifies which address encoding a derived address uses.
//
// The variants mirror the standard Bitcoin script types: pay-to-pubkey-hash,
// P2WPKH nested in P2SH, native P2WPKH, and pay-to-taproot.
type AddressType int

const (
	// AddressLegacy is a pay-to-pubkey-hash (P2PKH) address, prefix "1".
	AddressLegacy AddressType = iota

	// AddressWrappedSegwit is a P2WPKH output nested within a P2SH
	// address, prefix "3".
	AddressWrappedSegwit

	// AddressNativeSegwit is a native pay-to-witness-pubkey-hash
	// (P2WPKH) address, prefix "bc1q".
	AddressNativeSegwit

	// AddressTaproot is a witness-version-1 pay-to-taproot (P2TR)
	// address, prefix "bc1p".
	AddressTaproot
)

// String returns a human-readable representation of the address type.
func (t AddressType) String() string {
	switch t {
	case AddressLegacy:
		return "legacy"
	case AddressWrappedSegwit:
		return "wrapped-segwit"
	case AddressNativeSegwit:
		return "native-segwit"
	case AddressTaproot:
		return "taproot"
	default:
		return "unknown"
	}
}

// DirectPath is the derivation path tag used for addresses derived
// straight from a private key rather than through an HD path.
const DirectPath = "direct"

// DerivedAddress is one address produced from validated key material.
type DerivedAddress struct {
	// Address is the encoded address string.
	Address string `json:"address"`

	// Path is the derivation path, or DirectPath for non-HD derivation.
	Path string `json:"path"`

	// Type tags which address encoding variant this is.
	Type AddressType `json:"type"`

	// PublicKey is the hex-encoded public key when available.
	PublicKey string `json:"public_key,omitempty"`
}

// ValidationResult is the outcome of validating a single artifact.
// It is a pure value: it carries no ownership of secret bytes beyond
// the call that produced it.
//
// Invariant: Errors is non-empty whenever IsValid is false, unless a
// more specific status was already recorded on the artifact.
type ValidationResult struct {
	// IsValid reports whether the artifact passed validation.
	IsValid bool `json:"is_valid"`

	// Errors holds human-readable failure explanations in the order
	// they were encountered.
	Errors []string `json:"errors,omitempty"`

	// Warnings holds non-fatal observations, for example that a raw
	// hex key lacks the checksum of the WIF encoding.
	Warnings []string `json:"warnings,omitempty"`

	// DerivedAddresses lists every address variant that derived
	// successfully.
	DerivedAddresses []DerivedAddress `json:"derived_addresses,omitempty"`

	// Entropy is the mnemonic entropy in bits, zero when not applicable.
	Entropy int `json:"entropy,omitempty"`

	// Checksum reports checksum verification when the encoding has one.
	// Nil means the encoding carries no checksum.
	Checksum *bool `json:"checksum,omitempty"`
}

// AddError appends a failure explanation and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.IsValid = false
	r.Errors = append(r.Errors, msg)
}

// AddWarning appends a non-fatal observation.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
