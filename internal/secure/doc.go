// Package secure provides encrypted, zeroizing in-memory custody of
// sensitive byte buffers.
//
// The package has two pieces:
//   - Store: per-record encrypted custody with access auditing, display
//     masking, and checksum helpers. Records live only in process
//     memory; plaintext exists solely for the duration of a single
//     encrypt or decrypt call and is zeroized afterwards.
//   - Guard: explicit process-lifecycle state that clears every store
//     on termination signals, panics, and deterministic teardown.
//
// Design decision: The encryption key is derived per process from
// random material (PBKDF2 over a random passphrase and salt) rather
// than from fixed constants. A fixed passphrase would make every
// deployment produce identical ciphertext for identical plaintext,
// which defeats encryption against anyone holding the binary. An
// operator-supplied passphrase is still accepted for deterministic
// testing.
package secure
