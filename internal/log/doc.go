// Package log provides secure logging with automatic redaction of
// secret material, built on top of the standard slog package.
//
// A scanner that handles private keys and seed phrases must never let
// them reach its own log output, even at debug level. The
// SecureHandler wraps any slog.Handler and masks attribute values that
// look like key material before the underlying handler sees them:
//   - Attribute keys naming secrets (private_key, mnemonic, passphrase)
//   - WIF-encoded and raw hex private keys detected by pattern
//   - BIP32 extended private keys and PEM private key markers
//   - Seed phrases of twelve or more words
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("artifact found",
//	    "private_key", wif,   // masked
//	    "path", "/tmp/notes", // passed through
//	)
//	slog.SetDefault(logger)
package log
