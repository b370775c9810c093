// Package tier implements the price tier classifier. Tiers are an
// explicitly ordered list, checked from most privileged to least, and
// the first tier whose requirements are satisfied wins. The ordering is
// a policy decision: changing it changes who gets the best price.
package tier

import (
	"time"

	"github.com/analos-labs/launchpad-engine/internal/domain"
)

// Classifier maps a wallet's verified holdings and the collection's
// current supply to a tier assignment. It holds no mutable state.
type Classifier struct {
	col           *domain.Collection
	holdingPeriod time.Duration
}

// NewClassifier creates a classifier for a collection's tier schedule
func NewClassifier(col *domain.Collection) *Classifier {
	period := col.HoldingPeriod
	if period <= 0 {
		period = domain.DEFAULT_HOLDING_PERIOD
	}
	return &Classifier{col: col, holdingPeriod: period}
}

// Classify returns the first matching tier in declaration order.
// currentSupply must be read at classification time: bonding-curve
// tiers price by how much of the supply has already been minted.
func (c *Classifier) Classify(snap domain.EligibilitySnapshot, currentSupply uint64) domain.TierAssignment {
	publicPrice := uint64(0)
	if public := c.publicTier(); public != nil {
		publicPrice = c.priceFor(public, currentSupply)
	}

	for i := range c.col.Tiers {
		t := &c.col.Tiers[i]
		if !c.matches(t, snap) {
			continue
		}

		price := c.priceFor(t, currentSupply)
		return domain.TierAssignment{
			Tier:        t.ID,
			UnitPrice:   price,
			DiscountPct: discountPct(price, publicPrice),
			IsFree:      price == 0,
		}
	}

	// The schedule is expected to end in an open tier; an empty match
	// means a misconfigured collection, priced at base as a fallback.
	return domain.TierAssignment{Tier: domain.TierPublic, UnitPrice: c.col.PriceBase}
}

func (c *Classifier) matches(t *domain.TierConfig, snap domain.EligibilitySnapshot) bool {
	// Allowlisted tiers bypass balance and holding checks entirely
	if len(t.Wallets) > 0 {
		for _, w := range t.Wallets {
			if w == snap.Wallet {
				return true
			}
		}
		return false
	}

	if t.RequiresBalance == 0 {
		return true
	}
	if snap.TokenBalance < t.RequiresBalance {
		return false
	}
	return snap.HoldingDuration >= c.holdingPeriod
}

// priceFor computes the tier's unit price at the given supply. Tiers
// with PriceEnd > PriceStart follow a quadratic bonding curve across
// the collection's full supply range; everything else is flat.
func (c *Classifier) priceFor(t *domain.TierConfig, currentSupply uint64) uint64 {
	if t.Free {
		return 0
	}
	if t.PriceEnd <= t.PriceStart || c.col.MaxSupply == 0 {
		return t.PriceStart
	}
	if currentSupply >= c.col.MaxSupply {
		return t.PriceEnd
	}

	// price = start + (end-start) * (supply/max)^2, in integer math
	span := t.PriceEnd - t.PriceStart
	max := c.col.MaxSupply
	return t.PriceStart + span*currentSupply/max*currentSupply/max
}

func (c *Classifier) publicTier() *domain.TierConfig {
	for i := range c.col.Tiers {
		t := &c.col.Tiers[i]
		if len(t.Wallets) == 0 && t.RequiresBalance == 0 && !t.Free {
			return t
		}
	}
	return nil
}

func discountPct(price, publicPrice uint64) uint8 {
	if publicPrice == 0 || price >= publicPrice {
		return 0
	}
	return uint8((publicPrice - price) * 100 / publicPrice)
}
