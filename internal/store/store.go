package store

import (
	"context"

	"github.com/analos-labs/launchpad-engine/internal/domain"
	"github.com/analos-labs/launchpad-engine/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetCollection retrieves a collection by ID, or domain.ErrCollectionNotFound
	GetCollection(ctx context.Context, id string) (*schema.Collection, error)
	// CreateCollection persists a new collection with its tier allocations
	CreateCollection(ctx context.Context, col *schema.Collection, tiers []schema.TierAllocation) error
	// SaveCollectionState persists the mutable counters of a collection
	SaveCollectionState(ctx context.Context, id string, currentSupply uint64, isRevealed, isPaused bool) error
	// HasPriorMint checks whether a wallet already minted in a collection
	HasPriorMint(ctx context.Context, collectionID string, wallet domain.WalletID) (bool, error)
	// CreateMintRecord persists a committed mint
	CreateMintRecord(ctx context.Context, record *schema.MintRecord) error
	// DeleteMintRecord removes a mint record whose reservation never committed
	DeleteMintRecord(ctx context.Context, collectionID string, mintIndex uint64) error
	// GetMintRecord retrieves a single mint record by collection and index
	GetMintRecord(ctx context.Context, collectionID string, mintIndex uint64) (*schema.MintRecord, error)
	// GetTierAllocations lists a collection's tier allocations
	GetTierAllocations(ctx context.Context, collectionID string) ([]schema.TierAllocation, error)
	// SaveTierCounter persists a tier's minted counter
	SaveTierCounter(ctx context.Context, collectionID string, tier domain.TierID, minted uint32) error
}
