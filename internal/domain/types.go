package domain

import (
	"time"

	"github.com/mr-tron/base58"
)

// WalletID is a base58-encoded wallet address
type WalletID string

// Valid checks that the wallet address decodes to a 32-byte public key
func (w WalletID) Valid() bool {
	raw, err := base58.Decode(string(w))
	if err != nil {
		return false
	}
	return len(raw) == 32
}

// String returns the string representation of the WalletID
func (w WalletID) String() string {
	return string(w)
}

// TierID identifies a pricing/eligibility tier within a collection
type TierID string

const (
	TierTeam       TierID = "team"
	TierWhitelist1 TierID = "whitelist1"
	TierWhitelist2 TierID = "whitelist2"
	TierWhitelist3 TierID = "whitelist3"
	TierPublic     TierID = "public"
)

// RarityTier is the named rarity bucket derived from a mint's rarity score
type RarityTier string

const (
	RarityCommon    RarityTier = "common"
	RarityRare      RarityTier = "rare"
	RarityEpic      RarityTier = "epic"
	RarityLegendary RarityTier = "legendary"
)

// VariantTier is the cosmetic variant layer, independent of the rarity score
type VariantTier string

const (
	VariantNormal       VariantTier = "normal"
	VariantMatrixHacker VariantTier = "matrix_hacker"
	VariantNeo          VariantTier = "neo_variant"
	VariantOracleChosen VariantTier = "oracle_chosen"
)

// TierConfig describes one tier of a collection's mint schedule.
// Tiers are evaluated in declaration order and the first match wins,
// so the most privileged tier must come first.
type TierConfig struct {
	ID TierID `json:"id"`
	// Allocated is the tier's capacity in mint slots
	Allocated uint32 `json:"allocated"`
	// RequiresBalance is the minimum qualifying-token holding for this tier (0 = open)
	RequiresBalance uint64 `json:"requires_balance"`
	// PriceStart is the unit price in the smallest currency unit.
	// When PriceEnd > PriceStart the price follows a quadratic bonding
	// curve from PriceStart to PriceEnd across the collection's supply.
	PriceStart uint64 `json:"price_start"`
	PriceEnd   uint64 `json:"price_end"`
	// Free marks a zero-cost tier (team/first whitelist mint)
	Free bool `json:"free"`
	// Wallets restricts the tier to an explicit allowlist that bypasses
	// balance checks (team/platform wallets)
	Wallets []WalletID `json:"wallets,omitempty"`
}

// Collection holds the immutable parameters of a collection.
// Mutable counters (current supply, reveal flag, pause flag) live in the
// allocation ledger and are persisted through the store.
type Collection struct {
	ID              string        `json:"id"`
	Authority       WalletID      `json:"authority"`
	MaxSupply       uint64        `json:"max_supply"`
	PriceBase       uint64        `json:"price_base"`
	RevealThreshold uint64        `json:"reveal_threshold"`
	RevealedBaseURI string        `json:"revealed_base_uri"`
	GlobalSeed      [32]byte      `json:"-"`
	Epoch           uint64        `json:"epoch"`
	HoldingPeriod   time.Duration `json:"holding_period"`
	Tiers           []TierConfig  `json:"tiers"`
}

// TierByID returns the tier config with the given ID, or nil
func (c *Collection) TierByID(id TierID) *TierConfig {
	for i := range c.Tiers {
		if c.Tiers[i].ID == id {
			return &c.Tiers[i]
		}
	}
	return nil
}

// MinQualifyingBalance returns the smallest non-zero balance requirement
// across all tiers. Wallets below it mint as public and are exempt from
// the holding-period check.
func (c *Collection) MinQualifyingBalance() uint64 {
	min := uint64(0)
	for _, t := range c.Tiers {
		if t.RequiresBalance == 0 {
			continue
		}
		if min == 0 || t.RequiresBalance < min {
			min = t.RequiresBalance
		}
	}
	return min
}

// CollectionStatus is a point-in-time view of a collection's mutable state
type CollectionStatus struct {
	CurrentSupply uint64 `json:"current_supply"`
	MaxSupply     uint64 `json:"max_supply"`
	IsRevealed    bool   `json:"is_revealed"`
	IsPaused      bool   `json:"is_paused"`
}

// EligibilitySnapshot carries the chain-verified facts about a wallet at
// request time. It is computed per request and never persisted.
type EligibilitySnapshot struct {
	Wallet          WalletID
	TokenBalance    uint64
	HoldingDuration time.Duration
	HasPriorMint    bool
}

// TierAssignment is the classifier's verdict for a single request
type TierAssignment struct {
	Tier        TierID `json:"tier"`
	UnitPrice   uint64 `json:"unit_price"`
	DiscountPct uint8  `json:"discount_pct"`
	IsFree      bool   `json:"is_free"`
}

// MintOutcome is the terminal success result of a mint attempt.
// RarityScore is nil until the collection is revealed.
type MintOutcome struct {
	CollectionID string      `json:"collection_id"`
	MintIndex    uint64      `json:"mint_index"`
	Minter       WalletID    `json:"minter"`
	Tier         TierID      `json:"tier"`
	UnitPrice    uint64      `json:"unit_price"`
	DiscountPct  uint8       `json:"discount_pct"`
	Variant      VariantTier `json:"variant"`
	RarityScore  *uint32     `json:"rarity_score,omitempty"`
	RarityTier   *RarityTier `json:"rarity_tier,omitempty"`
}

// RevealStatus reports a collection's reveal progress
type RevealStatus struct {
	CollectionID    string `json:"collection_id"`
	IsRevealed      bool   `json:"is_revealed"`
	CurrentSupply   uint64 `json:"current_supply"`
	RevealThreshold uint64 `json:"reveal_threshold"`
}

// TierStatus reports a tier's capacity consumption
type TierStatus struct {
	CollectionID string `json:"collection_id"`
	Tier         TierID `json:"tier"`
	Allocated    uint32 `json:"allocated"`
	Minted       uint32 `json:"minted"`
	Remaining    uint32 `json:"remaining"`
}

// MintCommittedEvent is published after a mint commits
type MintCommittedEvent struct {
	CollectionID string      `json:"collection_id"`
	MintIndex    uint64      `json:"mint_index"`
	Minter       WalletID    `json:"minter"`
	Tier         TierID      `json:"tier"`
	UnitPrice    uint64      `json:"unit_price"`
	Variant      VariantTier `json:"variant"`
	Timestamp    time.Time   `json:"timestamp"`
}

// CollectionRevealedEvent is published when the reveal transition fires
type CollectionRevealedEvent struct {
	CollectionID  string    `json:"collection_id"`
	CurrentSupply uint64    `json:"current_supply"`
	BaseURI       string    `json:"base_uri"`
	Forced        bool      `json:"forced"`
	Timestamp     time.Time `json:"timestamp"`
}
