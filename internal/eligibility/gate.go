// Package eligibility implements the mint eligibility gate. The gate is
// a pure function of a chain-verified snapshot and the collection's
// current state; it performs no I/O and holds no shared state.
package eligibility

import (
	"time"

	"github.com/analos-labs/launchpad-engine/internal/domain"
)

// Gate decides whether a wallet may attempt a mint at all. Rejecting
// here keeps doomed requests away from the allocation ledger, so tier
// capacity is never consumed by a request that was always going to fail.
type Gate struct {
	holdingPeriod time.Duration
	// minQualifyingBalance is the smallest balance that unlocks any
	// discounted tier. Wallets below it mint as public and are exempt
	// from the holding-period check.
	minQualifyingBalance uint64
}

// NewGate creates a gate from the collection's tier schedule
func NewGate(col *domain.Collection) *Gate {
	period := col.HoldingPeriod
	if period <= 0 {
		period = domain.DEFAULT_HOLDING_PERIOD
	}
	return &Gate{
		holdingPeriod:        period,
		minQualifyingBalance: col.MinQualifyingBalance(),
	}
}

// Check returns nil when the wallet may proceed, or a typed rejection.
//
// The holding-period rule guards against wallets acquiring qualifying
// tokens moments before mint to claim a discount: a balance large
// enough for a discounted tier must have been held for the full period.
func (g *Gate) Check(snap domain.EligibilitySnapshot, status domain.CollectionStatus) *domain.Rejection {
	if snap.HasPriorMint {
		return domain.NewRejection(domain.ReasonAlreadyMinted)
	}
	if status.IsPaused {
		return domain.NewRejection(domain.ReasonCollectionPaused)
	}
	if status.CurrentSupply >= status.MaxSupply {
		return domain.NewRejection(domain.ReasonSoldOut)
	}
	if g.minQualifyingBalance > 0 &&
		snap.TokenBalance >= g.minQualifyingBalance &&
		snap.HoldingDuration < g.holdingPeriod {
		return domain.NewRejection(domain.ReasonHoldingPeriodNotMet)
	}
	return nil
}

// HoldingPeriod returns the gate's anti-bot threshold
func (g *Gate) HoldingPeriod() time.Duration {
	return g.holdingPeriod
}
