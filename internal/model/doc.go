// Package model defines the core data structures used throughout keyhound.
//
// This package contains the following main types:
//   - Artifact: A candidate piece of cryptocurrency evidence found in content
//   - CryptocurrencyType: An entry in the fixed currency registry
//   - ValidationResult: The outcome of validating a single artifact
//   - DerivedAddress: An address derived from validated key material
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (scanner, classify, validate, report) need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output. The
// Raw field of an Artifact holds the original matched text and is never
// mutated after construction; report writers are responsible for masking it.
package model
