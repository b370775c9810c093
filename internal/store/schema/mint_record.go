package schema

import (
	"time"
)

// MintRecord represents the mint_records table - one row per minted
// item. Rows are immutable after creation; the rarity score is present
// from mint time but only disclosed through the API after reveal.
type MintRecord struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CollectionID references the owning collection
	CollectionID string `gorm:"column:collection_id;not null;type:text;uniqueIndex:idx_mint_records_collection_index,priority:1;uniqueIndex:idx_mint_records_collection_minter,priority:1"`
	// MintIndex is the dense, sequential position within the collection
	MintIndex uint64 `gorm:"column:mint_index;not null;uniqueIndex:idx_mint_records_collection_index,priority:2"`
	// Minter is the base58 wallet that minted this item; one mint per
	// wallet per collection is enforced by the unique index
	Minter string `gorm:"column:minter;not null;type:text;uniqueIndex:idx_mint_records_collection_minter,priority:2"`
	// Tier is the price tier the mint was charged against
	Tier string `gorm:"column:tier;not null;type:text"`
	// UnitPrice is the price paid, in the smallest currency unit
	UnitPrice uint64 `gorm:"column:unit_price;not null"`
	// RarityScore is assigned at mint time, range 0-99
	RarityScore uint32 `gorm:"column:rarity_score;not null"`
	// Variant is the cosmetic variant tier
	Variant string `gorm:"column:variant;not null;type:text;default:'normal'"`
	// CreatedAt is the timestamp when the mint committed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Collection Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the MintRecord model
func (MintRecord) TableName() string {
	return "mint_records"
}
