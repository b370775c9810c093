// Package rarity implements deterministic rarity scoring, the cosmetic
// variant layer, and the collection reveal decision.
//
// Rarity is not true randomness: every value is a keyed keccak256 hash
// over stable inputs, so any observer can re-derive and verify scores
// after reveal without trusting this process's runtime state.
package rarity

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/analos-labs/launchpad-engine/internal/domain"
)

// Score ranges are fixed, non-overlapping and sum to exactly 100.
// They are part of the collection's public rules. Low scores are the
// rare ones.
const (
	legendaryBound = 5  // [0, 5)
	epicBound      = 20 // [5, 20)
	rareBound      = 50 // [20, 50)
)

// Variant band bounds, in parts per ten million, evaluated rarest-first.
const (
	variantModulus      = 10_000_000
	oracleChosenBound   = 100    // 0.001%
	neoVariantBound     = 1_000  // 0.01%
	matrixHackerBound   = 10_000 // 0.1%
)

// Score derives the rarity score for a mint index:
// keccak256(global_seed || mint_index_le) mod 100, with the leading
// eight hash bytes read little-endian. Both byte orders are part of
// the published derivation; verifiers re-deriving scores must get the
// same values.
func Score(seed [32]byte, mintIndex uint64) uint32 {
	buf := make([]byte, 40)
	copy(buf, seed[:])
	binary.LittleEndian.PutUint64(buf[32:], mintIndex)

	hash := crypto.Keccak256(buf)
	value := binary.LittleEndian.Uint64(hash[:8])
	return uint32(value % domain.RARITY_SCORE_RANGE)
}

// TierForScore maps a rarity score to its named tier
func TierForScore(score uint32) domain.RarityTier {
	switch {
	case score < legendaryBound:
		return domain.RarityLegendary
	case score < epicBound:
		return domain.RarityEpic
	case score < rareBound:
		return domain.RarityRare
	default:
		return domain.RarityCommon
	}
}

// VariantFor derives the cosmetic variant for a wallet and its chosen
// identity string. Bands are checked in increasing probability order
// with early return, so a pair qualifying for the rarest band never
// also matches a more common one.
func VariantFor(wallet domain.WalletID, identity string, epoch uint64) domain.VariantTier {
	buf := make([]byte, 0, len(wallet)+len(identity)+8)
	buf = append(buf, wallet...)
	buf = append(buf, identity...)
	buf = binary.LittleEndian.AppendUint64(buf, epoch)

	hash := crypto.Keccak256(buf)
	value := binary.LittleEndian.Uint64(hash[:8]) % variantModulus

	switch {
	case value < oracleChosenBound:
		return domain.VariantOracleChosen
	case value < neoVariantBound:
		return domain.VariantNeo
	case value < matrixHackerBound:
		return domain.VariantMatrixHacker
	default:
		return domain.VariantNormal
	}
}

// RevealDecision is the outcome of evaluating the reveal transition
type RevealDecision struct {
	Reveal  bool
	BaseURI string
}

// NoOp reports whether the decision leaves the collection unchanged
func (d RevealDecision) NoOp() bool {
	return !d.Reveal
}

// MaybeReveal decides whether the collection-wide reveal should fire.
// It is pure: the one-way flip itself is applied by the allocation
// ledger, which guarantees the transition happens exactly once.
func MaybeReveal(col *domain.Collection, status domain.CollectionStatus) RevealDecision {
	if status.IsRevealed {
		return RevealDecision{}
	}
	if status.CurrentSupply < col.RevealThreshold {
		return RevealDecision{}
	}
	return RevealDecision{Reveal: true, BaseURI: col.RevealedBaseURI}
}
