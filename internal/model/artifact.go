package model

import (
	"time"

	"github.com/google/uuid"
)

// ArtifactType categorizes what kind of cryptocurrency evidence an artifact is.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and exhaustive switch dispatch. The String()
// method provides human-readable output when needed.
type ArtifactType int

const (
	// ArtifactPrivateKey is a candidate private key (WIF or raw hex).
	ArtifactPrivateKey ArtifactType = iota

	// ArtifactSeedPhrase is a candidate mnemonic seed phrase.
	ArtifactSeedPhrase

	// ArtifactWalletFile is a file whose name suggests wallet contents.
	ArtifactWalletFile

	// ArtifactAddress is a candidate cryptocurrency address.
	ArtifactAddress

	// ArtifactTransaction is a candidate transaction identifier or blob.
	ArtifactTransaction

	// ArtifactExchangeData is exchange-related data such as API exports.
	ArtifactExchangeData
)

// String returns a human-readable representation of the artifact type.
func (t ArtifactType) String() string {
	switch t {
	case ArtifactPrivateKey:
		return "private_key"
	case ArtifactSeedPhrase:
		return "seed_phrase"
	case ArtifactWalletFile:
		return "wallet_file"
	case ArtifactAddress:
		return "address"
	case ArtifactTransaction:
		return "transaction"
	case ArtifactExchangeData:
		return "exchange_data"
	default:
		return "unknown"
	}
}

// ValidationStatus tracks an artifact through its validation lifecycle.
type ValidationStatus int

const (
	// StatusPending means the artifact has been classified but not yet validated.
	// Every artifact starts in this state.
	StatusPending ValidationStatus = iota

	// StatusValid means validation succeeded.
	StatusValid

	// StatusInvalid means the artifact failed format or cryptographic checks.
	StatusInvalid

	// StatusError means validation itself could not complete (for example,
	// an unsupported currency). Distinct from StatusInvalid so callers can
	// separate "checked and wrong" from "could not check".
	StatusError
)

// String returns a human-readable representation of the validation status.
func (s ValidationStatus) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusValid:
		return "VALID"
	case StatusInvalid:
		return "INVALID"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SourceKind identifies where an artifact was discovered.
type SourceKind int

const (
	// SourceFile means the artifact was found in file content.
	SourceFile SourceKind = iota

	// SourceFileName means the artifact was matched against a file name
	// rather than content (wallet-file markers).
	SourceFileName

	// SourceText means the artifact was found in caller-provided text
	// with no filesystem origin.
	SourceText
)

// String returns a human-readable representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceFileName:
		return "filename"
	case SourceText:
		return "text"
	default:
		return "unknown"
	}
}

// Source records the origin of a discovered artifact.
type Source struct {
	// Kind is the origin category (file content, file name, raw text).
	Kind SourceKind `json:"kind"`

	// Path is the file path or other identifier of the origin.
	Path string `json:"path"`
}

// Metadata carries descriptive attributes attached to an artifact.
type Metadata struct {
	// Currency describes the cryptocurrency this artifact belongs to.
	Currency CryptocurrencyType `json:"currency"`

	// Confidence is the scanner's confidence in [0, 0.95].
	// Use SetConfidence to keep the clamping invariant.
	Confidence float64 `json:"confidence"`

	// DerivationPath is set when the artifact came from HD derivation.
	DerivationPath string `json:"derivation_path,omitempty"`

	// Tags holds free-form labels attached during processing.
	Tags []string `json:"tags,omitempty"`
}

// MaxConfidence is the upper bound for artifact confidence.
// Scanners never claim certainty; 0.95 is the ceiling by contract.
const MaxConfidence = 0.95

// ClampConfidence clamps a confidence value to the [0, MaxConfidence] range.
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxConfidence {
		return MaxConfidence
	}
	return v
}

// Artifact is a candidate piece of cryptocurrency-related evidence
// discovered in content.
//
// Invariants:
//   - Raw holds the original matched text byte-for-byte and is never
//     mutated after construction. Validators may normalize a copy
//     (whitespace stripping only) but never write back.
//   - Metadata.Confidence stays within [0, MaxConfidence].
//
// Lifecycle: created by the classifier with StatusPending, mutated in
// place only by the validator that owns its type (ValidationStatus,
// DerivedAddresses, ValidatedAt), and discarded on clear-all or process
// teardown.
type Artifact struct {
	// ID is the opaque identity of this artifact.
	ID string `json:"id"`

	// Type is the artifact category used for validator dispatch.
	Type ArtifactType `json:"type"`

	// Subtype is a free-form descriptive label (for example "wif",
	// "hex", "bech32").
	Subtype string `json:"subtype"`

	// Raw is the original matched text. Never mutated.
	Raw string `json:"raw"`

	// Source records where the artifact was found.
	Source Source `json:"source"`

	// Metadata carries currency, confidence, and tags.
	Metadata Metadata `json:"metadata"`

	// ValidationStatus is the current lifecycle state.
	ValidationStatus ValidationStatus `json:"validation_status"`

	// DerivedAddresses is populated by validators on success.
	DerivedAddresses []DerivedAddress `json:"derived_addresses,omitempty"`

	// CreatedAt is when the artifact record was constructed.
	CreatedAt time.Time `json:"created_at"`

	// ValidatedAt is when validation last completed, zero if pending.
	ValidatedAt time.Time `json:"validated_at,omitzero"`
}

// NewArtifact creates an Artifact with a fresh ID, StatusPending,
// an empty tag set, and a clamped confidence value.
func NewArtifact(typ ArtifactType, subtype, raw string, source Source, meta Metadata) *Artifact {
	meta.Confidence = ClampConfidence(meta.Confidence)
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	return &Artifact{
		ID:               uuid.NewString(),
		Type:             typ,
		Subtype:          subtype,
		Raw:              raw,
		Source:           source,
		Metadata:         meta,
		ValidationStatus: StatusPending,
		CreatedAt:        time.Now().UTC(),
	}
}

// ApplyResult updates the artifact's lifecycle fields from a validation
// result. This is the only sanctioned mutation of an artifact after
// construction.
func (a *Artifact) ApplyResult(res *ValidationResult) {
	if res.IsValid {
		a.ValidationStatus = StatusValid
	} else {
		a.ValidationStatus = StatusInvalid
	}
	a.DerivedAddresses = res.DerivedAddresses
	a.ValidatedAt = time.Now().UTC()
}
