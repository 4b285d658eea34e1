package classify

import (
	"github.com/keyhound/keyhound/internal/model"
	"github.com/keyhound/keyhound/internal/scanner"
)

// classification is the (type, subtype) pair a pattern category maps to.
type classification struct {
	typ     model.ArtifactType
	subtype string
}

// categoryTable is the deterministic category-to-classification mapping.
//
// Design decision: A fixed table keyed by the scanner's closed category
// enum keeps the mapping exhaustive; classifyCategory falls back to the
// base58 catch-all classification for categories it does not know,
// which can only happen if the scanner enum grows without this table.
var categoryTable = map[scanner.PatternCategory]classification{
	scanner.PatternWIFKey:        {model.ArtifactPrivateKey, "wif"},
	scanner.PatternHexKey:        {model.ArtifactPrivateKey, "hex"},
	scanner.PatternLegacyAddress: {model.ArtifactAddress, "legacy"},
	scanner.PatternBech32Address: {model.ArtifactAddress, "bech32"},
	scanner.PatternHexAddress:    {model.ArtifactAddress, "hex"},
	scanner.PatternMnemonic:      {model.ArtifactSeedPhrase, "bip39"},
	scanner.PatternWalletFile:    {model.ArtifactWalletFile, "filename-marker"},
	scanner.PatternBase58Blob:    {model.ArtifactExchangeData, "base58-blob"},
}

// Classify builds an artifact record from a scanner match.
//
// The mapping is pure: the match's text becomes the artifact's
// immutable Raw field, the match score becomes the confidence, and the
// record starts in StatusPending with an empty tag set. The currency
// defaults to Bitcoin mainnet, the engine's supported curve family.
func Classify(m scanner.Match) *model.Artifact {
	c, ok := categoryTable[m.Category]
	if !ok {
		c = classification{model.ArtifactExchangeData, "base58-blob"}
	}

	kind := model.SourceFile
	if m.Category == scanner.PatternWalletFile {
		kind = model.SourceFileName
	}

	return model.NewArtifact(c.typ, c.subtype, m.Text,
		model.Source{Kind: kind, Path: m.Identifier},
		model.Metadata{
			Currency:   model.Bitcoin,
			Confidence: m.Confidence(),
		},
	)
}

// ClassifyAll classifies every match in order.
func ClassifyAll(matches []scanner.Match) []*model.Artifact {
	artifacts := make([]*model.Artifact, 0, len(matches))
	for _, m := range matches {
		artifacts = append(artifacts, Classify(m))
	}
	return artifacts
}
