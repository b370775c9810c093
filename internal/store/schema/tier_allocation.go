package schema

import (
	"time"
)

// TierAllocation represents the tier_allocations table - one row per
// tier per collection, tracking capacity consumption. The invariant
// minted <= allocated is enforced by the in-memory ledger; these rows
// mirror it for durability and reporting.
type TierAllocation struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CollectionID references the owning collection
	CollectionID string `gorm:"column:collection_id;not null;type:text;uniqueIndex:idx_tier_allocations_collection_tier,priority:1"`
	// Tier is the tier identifier (team, whitelist1, public, ...)
	Tier string `gorm:"column:tier;not null;type:text;uniqueIndex:idx_tier_allocations_collection_tier,priority:2"`
	// Allocated is the tier's capacity in mint slots
	Allocated uint32 `gorm:"column:allocated;not null"`
	// Minted is the number of slots consumed
	Minted uint32 `gorm:"column:minted;not null;default:0"`
	// RequiresBalance is the minimum qualifying-token holding
	RequiresBalance uint64 `gorm:"column:requires_balance;not null;default:0"`
	// CreatedAt is the timestamp when this allocation was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the counter was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Collection Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the TierAllocation model
func (TierAllocation) TableName() string {
	return "tier_allocations"
}
