package validate

import (
	"testing"

	"github.com/keyhound/keyhound/internal/model"
)

// addrArtifact builds an address artifact for tests.
func addrArtifact(raw string) *model.Artifact {
	return model.NewArtifact(model.ArtifactAddress, "legacy", raw,
		model.Source{Kind: model.SourceText}, model.Metadata{Currency: model.Bitcoin})
}

// TestValidateAddress tests checksum and witness-program validation of
// encoded addresses.
func TestValidateAddress(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"genesis legacy address", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", true},
		{"p2sh address", "3JvL6Ymt8MVWiCNHC7oWU6nLeHNJKLZGLN", true},
		{"bech32 v0 address", "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", true},
		{"corrupted base58 checksum", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb", false},
		{"corrupted bech32", "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t5", false},
		{"hex-prefixed address is not bitcoin", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},
		{"empty string", "", false},
		{"garbage", "not-an-address", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res := ValidateAddress(addrArtifact(tc.raw))
			if res.IsValid != tc.valid {
				t.Fatalf("expected valid=%v, got %v (errors %v)", tc.valid, res.IsValid, res.Errors)
			}
			if !tc.valid && len(res.Errors) == 0 {
				t.Error("invalid address must carry a non-empty error list")
			}
			if tc.valid && len(res.DerivedAddresses) != 0 {
				t.Error("address validation must not derive addresses")
			}
		})
	}
}

// TestValidateAddressWhitespace tests read-only whitespace stripping.
func TestValidateAddressWhitespace(t *testing.T) {
	t.Parallel()

	raw := " 1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa\n"
	a := addrArtifact(raw)
	res := ValidateAddress(a)
	if !res.IsValid {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
	if a.Raw != raw {
		t.Errorf("Raw was mutated: %q", a.Raw)
	}
}

// TestValidateDispatch tests the type-based dispatch and lifecycle
// bookkeeping.
func TestValidateDispatch(t *testing.T) {
	t.Parallel()

	t.Run("address artifacts reach the address validator", func(t *testing.T) {
		t.Parallel()

		a := addrArtifact("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa")
		res := Validate(a)
		if !res.IsValid {
			t.Fatalf("expected valid, got %v", res.Errors)
		}
		if a.ValidationStatus != model.StatusValid {
			t.Errorf("expected StatusValid, got %v", a.ValidationStatus)
		}
		if a.ValidatedAt.IsZero() {
			t.Error("expected ValidatedAt to be set")
		}
	})

	t.Run("invalid artifacts are marked invalid", func(t *testing.T) {
		t.Parallel()

		a := addrArtifact("not-an-address")
		Validate(a)
		if a.ValidationStatus != model.StatusInvalid {
			t.Errorf("expected StatusInvalid, got %v", a.ValidationStatus)
		}
	})

	t.Run("unvalidatable types are marked as errors", func(t *testing.T) {
		t.Parallel()

		a := model.NewArtifact(model.ArtifactWalletFile, "filename-marker", "wallet.dat",
			model.Source{Kind: model.SourceFileName}, model.Metadata{Currency: model.Bitcoin})
		res := Validate(a)
		if res.IsValid {
			t.Error("expected invalid")
		}
		if a.ValidationStatus != model.StatusError {
			t.Errorf("expected StatusError, got %v", a.ValidationStatus)
		}
	})

	t.Run("unsupported currency is marked as an error", func(t *testing.T) {
		t.Parallel()

		a := addrArtifact("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa")
		a.Metadata.Currency = model.CryptocurrencyType{Name: "Monero", Symbol: "XMR"}
		res := Validate(a)
		if res.IsValid {
			t.Error("expected invalid")
		}
		if a.ValidationStatus != model.StatusError {
			t.Errorf("expected StatusError, got %v", a.ValidationStatus)
		}
	})
}
