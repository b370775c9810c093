package schema

import (
	"time"
)

// Collection represents the collections table - the durable record of a
// collection's configuration and mutable counters. The in-memory
// allocation ledger is the runtime authority; rows here are the resume
// point after a restart.
type Collection struct {
	// ID is the external collection identifier
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Authority is the base58 wallet that owns admin operations
	Authority string `gorm:"column:authority;not null;type:text"`
	// MaxSupply is the hard supply cap
	MaxSupply uint64 `gorm:"column:max_supply;not null"`
	// CurrentSupply counts committed and burned mint indices
	CurrentSupply uint64 `gorm:"column:current_supply;not null;default:0"`
	// PriceBase is the base unit price in the smallest currency unit
	PriceBase uint64 `gorm:"column:price_base;not null"`
	// RevealThreshold is the supply count that triggers reveal
	RevealThreshold uint64 `gorm:"column:reveal_threshold;not null"`
	// RevealedBaseURI is the metadata base exposed after reveal
	RevealedBaseURI string `gorm:"column:revealed_base_uri;not null;type:text"`
	// IsRevealed is monotonic: once true, never false
	IsRevealed bool `gorm:"column:is_revealed;not null;default:false"`
	// IsPaused halts minting when set
	IsPaused bool `gorm:"column:is_paused;not null;default:false"`
	// GlobalSeed is the hex-encoded 32-byte entropy root for rarity,
	// fixed at creation and immutable afterward
	GlobalSeed string `gorm:"column:global_seed;not null;type:text"`
	// Epoch feeds the variant hash so re-launches reshuffle variants
	Epoch uint64 `gorm:"column:epoch;not null;default:0"`
	// CreatedAt is the timestamp when this collection was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last counter update
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	MintRecords     []MintRecord     `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	TierAllocations []TierAllocation `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
