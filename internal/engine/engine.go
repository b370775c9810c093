// Package engine orchestrates the full mint pipeline: eligibility,
// tier classification, allocation, rarity assignment, persistence and
// event publishing. It owns one runtime per collection and is the only
// caller of the allocation ledger.
package engine

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/analos-labs/launchpad-engine/internal/adapter"
	"github.com/analos-labs/launchpad-engine/internal/chain"
	"github.com/analos-labs/launchpad-engine/internal/domain"
	"github.com/analos-labs/launchpad-engine/internal/eligibility"
	"github.com/analos-labs/launchpad-engine/internal/ledger"
	"github.com/analos-labs/launchpad-engine/internal/logger"
	"github.com/analos-labs/launchpad-engine/internal/messaging"
	"github.com/analos-labs/launchpad-engine/internal/rarity"
	"github.com/analos-labs/launchpad-engine/internal/store"
	"github.com/analos-labs/launchpad-engine/internal/store/schema"
	"github.com/analos-labs/launchpad-engine/internal/tier"
)

// Config holds engine tuning parameters
type Config struct {
	// ReservationTTL bounds how long a reservation may stay uncommitted
	ReservationTTL time.Duration
	// PersistRetryInterval is the wait before the single persistence retry
	PersistRetryInterval time.Duration
}

// Engine defines the mint orchestrator interface
//
//go:generate mockgen -source=engine.go -destination=../mocks/engine.go -package=mocks -mock_names=Engine=MockEngine
type Engine interface {
	// AttemptMint runs the full mint pipeline for a wallet
	AttemptMint(ctx context.Context, collectionID string, wallet domain.WalletID, identity string) (*domain.MintOutcome, error)
	// RevealStatus reports a collection's reveal progress
	RevealStatus(ctx context.Context, collectionID string) (*domain.RevealStatus, error)
	// TierStatus reports a tier's capacity consumption
	TierStatus(ctx context.Context, collectionID string, tierID domain.TierID) (*domain.TierStatus, error)
	// ForceReveal applies the reveal transition early, authority only
	ForceReveal(ctx context.Context, collectionID string, authority domain.WalletID) (*domain.RevealStatus, error)
	// SetPaused toggles the collection's pause flag, authority only
	SetPaused(ctx context.Context, collectionID string, authority domain.WalletID, paused bool) error
	// ReapExpired releases timed-out reservations across all collections
	// and returns how many were reaped
	ReapExpired(ctx context.Context) (int, error)
	// ReapCollection releases timed-out reservations for one collection
	ReapCollection(ctx context.Context, collectionID string) (int, error)
	// Collections lists the IDs of all loaded collections
	Collections() []string
}

// runtime bundles the per-collection collaborators around one ledger
type runtime struct {
	col        *domain.Collection
	gate       *eligibility.Gate
	classifier *tier.Classifier
	ledger     *ledger.Ledger
}

type service struct {
	mu       sync.RWMutex
	runtimes map[string]*runtime

	store     store.Store
	querier   chain.Querier
	publisher messaging.Publisher
	clock     adapter.Clock
	config    Config
}

// NewService creates the engine and loads every configured collection,
// resuming persisted counters where the store already knows them.
func NewService(
	ctx context.Context,
	collections []domain.Collection,
	st store.Store,
	querier chain.Querier,
	publisher messaging.Publisher,
	clock adapter.Clock,
	cfg Config,
) (Engine, error) {
	s := &service{
		runtimes:  make(map[string]*runtime, len(collections)),
		store:     st,
		querier:   querier,
		publisher: publisher,
		clock:     clock,
		config:    cfg,
	}

	for i := range collections {
		if err := s.loadCollection(ctx, &collections[i]); err != nil {
			return nil, fmt.Errorf("failed to load collection %s: %w", collections[i].ID, err)
		}
	}

	return s, nil
}

// loadCollection creates or resumes one collection runtime. The durable
// store is the authority for the global seed and the mutable counters;
// the passed-in config is the authority for everything immutable.
func (s *service) loadCollection(ctx context.Context, col *domain.Collection) error {
	record, err := s.store.GetCollection(ctx, col.ID)

	var resume *ledger.ResumeState
	switch {
	case err == nil:
		seed, decodeErr := hex.DecodeString(record.GlobalSeed)
		if decodeErr != nil || len(seed) != 32 {
			return fmt.Errorf("stored global seed for %s is malformed", col.ID)
		}
		copy(col.GlobalSeed[:], seed)

		allocations, err := s.store.GetTierAllocations(ctx, col.ID)
		if err != nil {
			return err
		}
		tierMinted := make(map[domain.TierID]uint32, len(allocations))
		for _, a := range allocations {
			tierMinted[domain.TierID(a.Tier)] = a.Minted
		}
		resume = &ledger.ResumeState{
			CurrentSupply: record.CurrentSupply,
			IsRevealed:    record.IsRevealed,
			IsPaused:      record.IsPaused,
			TierMinted:    tierMinted,
		}

	case errors.Is(err, domain.ErrCollectionNotFound):
		if col.GlobalSeed == ([32]byte{}) {
			col.GlobalSeed = deriveSeed(col.ID, col.Authority, s.clock.Now())
		}
		record := &schema.Collection{
			ID:              col.ID,
			Authority:       string(col.Authority),
			MaxSupply:       col.MaxSupply,
			PriceBase:       col.PriceBase,
			RevealThreshold: col.RevealThreshold,
			RevealedBaseURI: col.RevealedBaseURI,
			GlobalSeed:      hex.EncodeToString(col.GlobalSeed[:]),
			Epoch:           col.Epoch,
		}
		allocations := make([]schema.TierAllocation, 0, len(col.Tiers))
		for _, tc := range col.Tiers {
			allocations = append(allocations, schema.TierAllocation{
				CollectionID:    col.ID,
				Tier:            string(tc.ID),
				Allocated:       tc.Allocated,
				RequiresBalance: tc.RequiresBalance,
			})
		}
		if err := s.store.CreateCollection(ctx, record, allocations); err != nil {
			return err
		}
		logger.InfoCtx(ctx, "Created collection",
			zap.String("collection_id", col.ID),
			zap.Uint64("max_supply", col.MaxSupply))

	default:
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runtimes[col.ID] = &runtime{
		col:        col,
		gate:       eligibility.NewGate(col),
		classifier: tier.NewClassifier(col),
		ledger:     ledger.New(col, resume, s.config.ReservationTTL, s.clock),
	}

	return nil
}

// deriveSeed computes the collection's entropy root when the operator
// did not supply one. It is persisted immediately and never re-derived,
// so scores stay stable across restarts.
func deriveSeed(id string, authority domain.WalletID, now time.Time) [32]byte {
	buf := make([]byte, 0, len(id)+len(authority)+8)
	buf = append(buf, id...)
	buf = append(buf, authority...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(now.UnixNano()))

	var seed [32]byte
	copy(seed[:], crypto.Keccak256(buf))
	return seed
}

func (s *service) runtime(collectionID string) (*runtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rt, ok := s.runtimes[collectionID]
	if !ok {
		return nil, domain.ErrCollectionNotFound
	}
	return rt, nil
}

// AttemptMint runs the full pipeline. Any failure after the reservation
// is taken releases it before returning, so a failed attempt never
// leaks capacity.
func (s *service) AttemptMint(ctx context.Context, collectionID string, wallet domain.WalletID, identity string) (*domain.MintOutcome, error) {
	rt, err := s.runtime(collectionID)
	if err != nil {
		return nil, err
	}
	if !wallet.Valid() {
		return nil, domain.ErrInvalidWallet
	}

	snap, err := s.snapshot(ctx, rt, wallet)
	if err != nil {
		return nil, err
	}

	status := rt.ledger.Status()
	if rejection := rt.gate.Check(*snap, status); rejection != nil {
		return nil, rejection
	}

	assignment := rt.classifier.Classify(*snap, status.CurrentSupply)

	reservation, err := rt.ledger.Reserve(assignment.Tier)
	if err != nil {
		return nil, err
	}

	score := rarity.Score(rt.col.GlobalSeed, reservation.MintIndex)
	variant := rarity.VariantFor(wallet, identity, rt.col.Epoch)

	if err := s.persistMint(ctx, rt, reservation.MintIndex, wallet, assignment, score, variant); err != nil {
		if releaseErr := rt.ledger.Release(reservation.Token); releaseErr != nil {
			logger.ErrorCtx(ctx, releaseErr, zap.String("collection_id", collectionID))
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrStorageFailure, err)
	}

	mintIndex, err := rt.ledger.Commit(reservation.Token)
	if err != nil {
		// The reservation aged out during persistence and was reaped,
		// so its index may be reassigned. The record written above
		// must not survive or the reassigned index would collide.
		if delErr := s.store.DeleteMintRecord(ctx, rt.col.ID, reservation.MintIndex); delErr != nil {
			logger.ErrorCtx(ctx, delErr,
				zap.String("collection_id", collectionID),
				zap.Uint64("mint_index", reservation.MintIndex))
		}
		logger.ErrorCtx(ctx, err,
			zap.String("collection_id", collectionID),
			zap.String("wallet", wallet.String()),
			zap.Uint64("mint_index", reservation.MintIndex))
		return nil, fmt.Errorf("failed to commit reservation: %w", err)
	}

	logger.InfoCtx(ctx, "Mint committed",
		zap.String("collection_id", collectionID),
		zap.String("wallet", wallet.String()),
		zap.Uint64("mint_index", mintIndex),
		zap.String("tier", string(assignment.Tier)))

	// Events and the reveal transition are best effort: the mint has
	// committed and must not fail because of them.
	s.publishMintCommitted(ctx, rt, mintIndex, wallet, assignment, variant)
	s.maybeReveal(ctx, rt, false)

	outcome := &domain.MintOutcome{
		CollectionID: collectionID,
		MintIndex:    mintIndex,
		Minter:       wallet,
		Tier:         assignment.Tier,
		UnitPrice:    assignment.UnitPrice,
		DiscountPct:  assignment.DiscountPct,
		Variant:      variant,
	}
	if rt.ledger.Status().IsRevealed {
		rarityTier := rarity.TierForScore(score)
		outcome.RarityScore = &score
		outcome.RarityTier = &rarityTier
	}

	return outcome, nil
}

// snapshot gathers the chain-verified facts about a wallet. The token
// account age is only queried when the balance qualifies for a
// balance-gated tier, to keep the common path to a single RPC call.
func (s *service) snapshot(ctx context.Context, rt *runtime, wallet domain.WalletID) (*domain.EligibilitySnapshot, error) {
	hasPrior, err := s.store.HasPriorMint(ctx, rt.col.ID, wallet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrStorageFailure, err)
	}

	balance, err := s.querier.GetTokenBalance(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to query token balance: %w", err)
	}

	var holding time.Duration
	if min := rt.col.MinQualifyingBalance(); min > 0 && balance >= min {
		holding, err = s.querier.GetTokenAccountAge(ctx, wallet)
		if err != nil {
			return nil, fmt.Errorf("failed to query token account age: %w", err)
		}
	}

	return &domain.EligibilitySnapshot{
		Wallet:          wallet,
		TokenBalance:    balance,
		HoldingDuration: holding,
		HasPriorMint:    hasPrior,
	}, nil
}

// persistMint writes the mint record and the counters it moved. A
// transient storage failure is retried exactly once before giving up.
func (s *service) persistMint(ctx context.Context, rt *runtime, mintIndex uint64, wallet domain.WalletID, assignment domain.TierAssignment, score uint32, variant domain.VariantTier) error {
	interval := s.config.PersistRetryInterval
	if interval == 0 {
		interval = 100 * time.Millisecond
	}

	operation := func() error {
		if err := s.store.CreateMintRecord(ctx, &schema.MintRecord{
			CollectionID: rt.col.ID,
			MintIndex:    mintIndex,
			Minter:       string(wallet),
			Tier:         string(assignment.Tier),
			UnitPrice:    assignment.UnitPrice,
			RarityScore:  score,
			Variant:      string(variant),
		}); err != nil {
			return err
		}
		return s.persistCounters(ctx, rt, assignment.Tier)
	}

	return backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), 1), ctx))
}

// persistCounters mirrors the ledger's counters into the store so a
// restarted process resumes where this one left off
func (s *service) persistCounters(ctx context.Context, rt *runtime, tiers ...domain.TierID) error {
	minted := rt.ledger.TierMinted()
	for _, id := range tiers {
		if err := s.store.SaveTierCounter(ctx, rt.col.ID, id, minted[id]); err != nil {
			return err
		}
	}

	status := rt.ledger.Status()
	return s.store.SaveCollectionState(ctx, rt.col.ID, status.CurrentSupply, status.IsRevealed, status.IsPaused)
}

func (s *service) publishMintCommitted(ctx context.Context, rt *runtime, mintIndex uint64, wallet domain.WalletID, assignment domain.TierAssignment, variant domain.VariantTier) {
	err := s.publisher.PublishMintCommitted(ctx, &domain.MintCommittedEvent{
		CollectionID: rt.col.ID,
		MintIndex:    mintIndex,
		Minter:       wallet,
		Tier:         assignment.Tier,
		UnitPrice:    assignment.UnitPrice,
		Variant:      variant,
		Timestamp:    s.clock.Now(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("collection_id", rt.col.ID),
			zap.Uint64("mint_index", mintIndex))
	}
}

// maybeReveal evaluates and, when due, applies the one-way reveal
// transition. The ledger's MarkRevealed returns true exactly once, so
// the revealed event is published exactly once per collection.
func (s *service) maybeReveal(ctx context.Context, rt *runtime, forced bool) bool {
	status := rt.ledger.Status()
	if !forced {
		if decision := rarity.MaybeReveal(rt.col, status); decision.NoOp() {
			return false
		}
	}
	if !rt.ledger.MarkRevealed() {
		return false
	}

	status = rt.ledger.Status()
	if err := s.store.SaveCollectionState(ctx, rt.col.ID, status.CurrentSupply, status.IsRevealed, status.IsPaused); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("collection_id", rt.col.ID))
	}

	logger.InfoCtx(ctx, "Collection revealed",
		zap.String("collection_id", rt.col.ID),
		zap.Uint64("current_supply", status.CurrentSupply),
		zap.Bool("forced", forced))

	err := s.publisher.PublishCollectionRevealed(ctx, &domain.CollectionRevealedEvent{
		CollectionID:  rt.col.ID,
		CurrentSupply: status.CurrentSupply,
		BaseURI:       rt.col.RevealedBaseURI,
		Forced:        forced,
		Timestamp:     s.clock.Now(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("collection_id", rt.col.ID))
	}

	return true
}

// RevealStatus reports a collection's reveal progress
func (s *service) RevealStatus(ctx context.Context, collectionID string) (*domain.RevealStatus, error) {
	rt, err := s.runtime(collectionID)
	if err != nil {
		return nil, err
	}

	status := rt.ledger.Status()
	return &domain.RevealStatus{
		CollectionID:    collectionID,
		IsRevealed:      status.IsRevealed,
		CurrentSupply:   status.CurrentSupply,
		RevealThreshold: rt.col.RevealThreshold,
	}, nil
}

// TierStatus reports a tier's capacity consumption
func (s *service) TierStatus(ctx context.Context, collectionID string, tierID domain.TierID) (*domain.TierStatus, error) {
	rt, err := s.runtime(collectionID)
	if err != nil {
		return nil, err
	}

	status, err := rt.ledger.TierStatus(tierID)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ForceReveal applies the reveal transition ahead of the threshold.
// Only the collection authority may call it, and it can only ever move
// the reveal earlier, never undo it.
func (s *service) ForceReveal(ctx context.Context, collectionID string, authority domain.WalletID) (*domain.RevealStatus, error) {
	rt, err := s.runtime(collectionID)
	if err != nil {
		return nil, err
	}
	if authority != rt.col.Authority {
		return nil, domain.ErrNotAuthorized
	}

	s.maybeReveal(ctx, rt, true)

	return s.RevealStatus(ctx, collectionID)
}

// SetPaused toggles the pause flag, authority only
func (s *service) SetPaused(ctx context.Context, collectionID string, authority domain.WalletID, paused bool) error {
	rt, err := s.runtime(collectionID)
	if err != nil {
		return err
	}
	if authority != rt.col.Authority {
		return domain.ErrNotAuthorized
	}

	rt.ledger.SetPaused(paused)

	status := rt.ledger.Status()
	if err := s.store.SaveCollectionState(ctx, collectionID, status.CurrentSupply, status.IsRevealed, status.IsPaused); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrStorageFailure, err)
	}

	logger.InfoCtx(ctx, "Collection pause toggled",
		zap.String("collection_id", collectionID),
		zap.Bool("paused", paused))

	return nil
}

// ReapExpired releases timed-out reservations across all collections
// and persists the counters they rolled back
func (s *service) ReapExpired(ctx context.Context) (int, error) {
	s.mu.RLock()
	runtimes := make([]*runtime, 0, len(s.runtimes))
	for _, rt := range s.runtimes {
		runtimes = append(runtimes, rt)
	}
	s.mu.RUnlock()

	total := 0
	for _, rt := range runtimes {
		count, err := s.reapRuntime(ctx, rt)
		total += count
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// ReapCollection releases timed-out reservations for one collection
func (s *service) ReapCollection(ctx context.Context, collectionID string) (int, error) {
	rt, err := s.runtime(collectionID)
	if err != nil {
		return 0, err
	}
	return s.reapRuntime(ctx, rt)
}

func (s *service) reapRuntime(ctx context.Context, rt *runtime) (int, error) {
	expired := rt.ledger.ReapExpired()
	if len(expired) == 0 {
		return 0, nil
	}

	tiers := make([]domain.TierID, 0, len(expired))
	seen := make(map[domain.TierID]bool)
	for _, res := range expired {
		if !seen[res.Tier] {
			seen[res.Tier] = true
			tiers = append(tiers, res.Tier)
		}
	}
	if err := s.persistCounters(ctx, rt, tiers...); err != nil {
		return len(expired), fmt.Errorf("%w: %s", domain.ErrStorageFailure, err)
	}

	logger.InfoCtx(ctx, "Reaped expired reservations",
		zap.String("collection_id", rt.col.ID),
		zap.Int("count", len(expired)))

	return len(expired), nil
}

// Collections lists the IDs of all loaded collections
func (s *service) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.runtimes))
	for id := range s.runtimes {
		ids = append(ids, id)
	}
	return ids
}
