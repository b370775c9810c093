package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/analos-labs/launchpad-engine/internal/domain"
	"github.com/analos-labs/launchpad-engine/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetCollection retrieves a collection by ID
func (s *pgStore) GetCollection(ctx context.Context, id string) (*schema.Collection, error) {
	var col schema.Collection
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&col).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &col, nil
}

// CreateCollection creates a collection with its tier allocations in a single transaction
func (s *pgStore) CreateCollection(ctx context.Context, col *schema.Collection, tiers []schema.TierAllocation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(col).Error; err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		if len(tiers) > 0 {
			if err := tx.Create(&tiers).Error; err != nil {
				return fmt.Errorf("failed to create tier allocations: %w", err)
			}
		}
		return nil
	})
}

// SaveCollectionState persists a collection's mutable counters
func (s *pgStore) SaveCollectionState(ctx context.Context, id string, currentSupply uint64, isRevealed, isPaused bool) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Collection{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_supply": currentSupply,
			"is_revealed":    isRevealed,
			"is_paused":      isPaused,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save collection state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCollectionNotFound
	}
	return nil
}

// HasPriorMint checks whether a wallet already holds a mint record in a collection
func (s *pgStore) HasPriorMint(ctx context.Context, collectionID string, wallet domain.WalletID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.MintRecord{}).
		Where("collection_id = ? AND minter = ?", collectionID, string(wallet)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check prior mint: %w", err)
	}
	return count > 0, nil
}

// CreateMintRecord persists a committed mint
func (s *pgStore) CreateMintRecord(ctx context.Context, record *schema.MintRecord) error {
	err := s.db.WithContext(ctx).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to create mint record: %w", err)
	}
	return nil
}

// DeleteMintRecord removes a persisted mint record whose reservation
// never committed, so its index can be reassigned safely
func (s *pgStore) DeleteMintRecord(ctx context.Context, collectionID string, mintIndex uint64) error {
	err := s.db.WithContext(ctx).
		Where("collection_id = ? AND mint_index = ?", collectionID, mintIndex).
		Delete(&schema.MintRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete mint record: %w", err)
	}
	return nil
}

// GetMintRecord retrieves a single mint record by collection and index
func (s *pgStore) GetMintRecord(ctx context.Context, collectionID string, mintIndex uint64) (*schema.MintRecord, error) {
	var record schema.MintRecord
	err := s.db.WithContext(ctx).
		Where("collection_id = ? AND mint_index = ?", collectionID, mintIndex).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mint record: %w", err)
	}
	return &record, nil
}

// GetTierAllocations lists a collection's tier allocations
func (s *pgStore) GetTierAllocations(ctx context.Context, collectionID string) ([]schema.TierAllocation, error) {
	var tiers []schema.TierAllocation
	err := s.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("id ASC").
		Find(&tiers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tier allocations: %w", err)
	}
	return tiers, nil
}

// SaveTierCounter upserts a tier's minted counter
func (s *pgStore) SaveTierCounter(ctx context.Context, collectionID string, tier domain.TierID, minted uint32) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_id"}, {Name: "tier"}},
			DoUpdates: clause.AssignmentColumns([]string{"minted", "updated_at"}),
		}).
		Create(&schema.TierAllocation{
			CollectionID: collectionID,
			Tier:         string(tier),
			Minted:       minted,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to save tier counter: %w", err)
	}
	return nil
}
