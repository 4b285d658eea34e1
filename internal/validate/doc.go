// Package validate decides whether candidate artifacts are structurally
// and cryptographically valid, and derives addresses from valid key
// material.
//
// The package contains three validators plus a single dispatch function:
//   - Key validation (key.go): WIF and raw-hex private keys, public key
//     derivation, and the four address variants
//   - Seed validation (seed.go): BIP39 checksum verification, entropy,
//     and HD derivation along the BIP44/49/84 first-address paths
//   - Address validation (address.go): checksum and witness-program
//     well-formedness of already-encoded addresses
//
// Design decision: Validator dispatch is a closed switch over the
// artifact type enum rather than a dynamic registry. The supported
// currency set is small and fixed, so a closed set keeps dispatch
// exhaustive and statically checkable.
//
// Validation failures are accumulated as human-readable strings inside
// the ValidationResult; validators never panic and never let a decode
// error escape to the caller. The artifact's Raw field is read-only:
// validators normalize a copy (whitespace stripping only) and never
// write back.
package validate
