package validate

import (
	"fmt"
	"time"

	"github.com/keyhound/keyhound/internal/model"
)

// Validate dispatches an artifact to the validator that owns its type,
// applies the outcome to the artifact's lifecycle fields, and returns
// the result.
//
// Unsupported artifact types and currencies are reported as validation
// failures with StatusError ("could not check", as opposed to
// StatusInvalid's "checked and wrong"), never as a panic or an escaping
// error. This is the only function that mutates artifacts after
// classification.
func Validate(a *model.Artifact) *model.ValidationResult {
	if _, ok := netParams(a.Metadata.Currency); !ok {
		res := &model.ValidationResult{}
		res.AddError(fmt.Sprintf("unsupported cryptocurrency: %s", a.Metadata.Currency.Symbol))
		markError(a)
		return res
	}

	var res *model.ValidationResult
	switch a.Type {
	case model.ArtifactPrivateKey:
		res = ValidateKey(a)
	case model.ArtifactSeedPhrase:
		res = ValidateSeed(a)
	case model.ArtifactAddress:
		res = ValidateAddress(a)
	case model.ArtifactWalletFile, model.ArtifactTransaction, model.ArtifactExchangeData:
		res = &model.ValidationResult{}
		res.AddError(fmt.Sprintf("no validator for artifact type %s", a.Type))
		markError(a)
		return res
	default:
		res = &model.ValidationResult{}
		res.AddError(fmt.Sprintf("unknown artifact type %d", a.Type))
		markError(a)
		return res
	}

	a.ApplyResult(res)
	return res
}

// markError records that validation could not run for this artifact.
func markError(a *model.Artifact) {
	a.ValidationStatus = model.StatusError
	a.ValidatedAt = time.Now().UTC()
}
