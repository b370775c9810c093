// Package ledger is the sole owner of a collection's mutable counters.
// Every mutation of tier capacity and the global supply counter goes
// through one mutex-guarded critical section, which is what makes the
// capacity invariant (minted <= allocated, no duplicate mint index)
// hold under arbitrary concurrency.
package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/analos-labs/launchpad-engine/internal/adapter"
	"github.com/analos-labs/launchpad-engine/internal/domain"
)

// Reservation is a provisional, capacity-consuming claim on a mint
// index and tier slot, pending commit. Tokens are opaque to callers.
type Reservation struct {
	Token     uuid.UUID
	Tier      domain.TierID
	MintIndex uint64
	Deadline  time.Time
}

type tierState struct {
	config   domain.TierConfig
	minted   uint32
	poisoned *domain.InvariantViolation
}

// Ledger tracks per-tier capacity and the dense global mint index for a
// single collection.
type Ledger struct {
	mu sync.Mutex

	collectionID  string
	maxSupply     uint64
	currentSupply uint64
	revealed      bool
	paused        bool

	tiers map[domain.TierID]*tierState

	// reservations holds only uncommitted claims so the expiry sweep
	// never scans finished mints; committed keeps per-token indices
	// for commit idempotency
	reservations map[uuid.UUID]Reservation
	committed    map[uuid.UUID]uint64
	// highestCommitted guards index rollback on release: a slot below a
	// committed index is burned, never reused
	highestCommitted uint64
	hasCommitted     bool
	burned           uint64

	reservationTTL time.Duration
	clock          adapter.Clock
}

// ResumeState carries previously persisted counters so a restarted
// process continues where the durable store left off.
type ResumeState struct {
	CurrentSupply uint64
	IsRevealed    bool
	IsPaused      bool
	TierMinted    map[domain.TierID]uint32
}

// New creates a ledger for a collection, optionally resuming persisted counters
func New(col *domain.Collection, resume *ResumeState, ttl time.Duration, clock adapter.Clock) *Ledger {
	if ttl <= 0 {
		ttl = domain.DEFAULT_RESERVATION_TTL
	}

	l := &Ledger{
		collectionID:   col.ID,
		maxSupply:      col.MaxSupply,
		tiers:          make(map[domain.TierID]*tierState, len(col.Tiers)),
		reservations:   make(map[uuid.UUID]Reservation),
		committed:      make(map[uuid.UUID]uint64),
		reservationTTL: ttl,
		clock:          clock,
	}

	for _, tc := range col.Tiers {
		l.tiers[tc.ID] = &tierState{config: tc}
	}

	if resume != nil {
		l.currentSupply = resume.CurrentSupply
		l.revealed = resume.IsRevealed
		l.paused = resume.IsPaused
		if l.currentSupply > 0 {
			l.hasCommitted = true
			l.highestCommitted = l.currentSupply - 1
		}
		for id, minted := range resume.TierMinted {
			if ts, ok := l.tiers[id]; ok {
				ts.minted = minted
			}
		}
	}

	return l
}

// Reserve atomically consumes one slot of the tier's capacity and
// assigns the next dense mint index. Index assignment and capacity
// consumption happen in the same critical section so a reservation can
// never claim an index without being charged against its tier.
func (l *Ledger) Reserve(tier domain.TierID) (*Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts, ok := l.tiers[tier]
	if !ok {
		return nil, domain.ErrTierNotFound
	}
	if ts.poisoned != nil {
		return nil, ts.poisoned
	}
	if ts.minted > ts.config.Allocated {
		// Must be unreachable; if it happens the atomicity guarantee is
		// broken and the tier is halted rather than silently repaired.
		ts.poisoned = &domain.InvariantViolation{
			CollectionID: l.collectionID,
			Tier:         tier,
			Detail:       "minted exceeds allocated",
		}
		return nil, ts.poisoned
	}
	if ts.minted == ts.config.Allocated {
		return nil, domain.NewCapacityRejection(tier)
	}
	if l.currentSupply >= l.maxSupply {
		return nil, domain.NewRejection(domain.ReasonSoldOut)
	}

	res := Reservation{
		Token:     uuid.New(),
		Tier:      tier,
		MintIndex: l.currentSupply,
		Deadline:  l.clock.Now().Add(l.reservationTTL),
	}
	l.currentSupply++
	ts.minted++
	l.reservations[res.Token] = res

	return &res, nil
}

// Release returns a reservation's tier slot to the pool. The mint index
// is rolled back only when it is still the top of the supply counter
// and no higher index has committed; otherwise the slot is permanently
// burned so indices are never reassigned.
func (l *Ledger) Release(token uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.releaseLocked(token)
}

func (l *Ledger) releaseLocked(token uuid.UUID) error {
	res, ok := l.reservations[token]
	if !ok {
		// Releasing an already-committed token is a no-op
		if _, done := l.committed[token]; done {
			return nil
		}
		return domain.ErrReservationNotFound
	}
	delete(l.reservations, token)

	if ts, ok := l.tiers[res.Tier]; ok && ts.minted > 0 {
		ts.minted--
	}

	canRollback := res.MintIndex == l.currentSupply-1 &&
		(!l.hasCommitted || l.highestCommitted < res.MintIndex)
	if canRollback {
		l.currentSupply--
	} else {
		l.burned++
	}

	return nil
}

// Commit finalizes a reservation. It is idempotent per token: calling
// it twice returns the same mint index.
func (l *Ledger) Commit(token uuid.UUID) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index, done := l.committed[token]; done {
		return index, nil
	}

	res, ok := l.reservations[token]
	if !ok {
		return 0, domain.ErrReservationNotFound
	}
	delete(l.reservations, token)
	l.committed[token] = res.MintIndex

	if !l.hasCommitted || res.MintIndex > l.highestCommitted {
		l.highestCommitted = res.MintIndex
		l.hasCommitted = true
	}

	return res.MintIndex, nil
}

// ReapExpired releases every uncommitted reservation whose deadline has
// passed and returns them. Called periodically by the sweeper so no
// reservation can starve other requesters indefinitely.
func (l *Ledger) ReapExpired() []Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	var expired []Reservation
	for token, res := range l.reservations {
		if res.Deadline.After(now) {
			continue
		}
		expired = append(expired, res)
		_ = l.releaseLocked(token)
	}

	return expired
}

// MarkRevealed applies the one-way reveal transition. It returns true
// only on the single call that flips the flag; it never un-reveals.
func (l *Ledger) MarkRevealed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.revealed {
		return false
	}
	l.revealed = true
	return true
}

// SetPaused toggles the pause flag (authority-only, enforced upstream)
func (l *Ledger) SetPaused(paused bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paused = paused
}

// Status returns a point-in-time view of the mutable collection state
func (l *Ledger) Status() domain.CollectionStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	return domain.CollectionStatus{
		CurrentSupply: l.currentSupply,
		MaxSupply:     l.maxSupply,
		IsRevealed:    l.revealed,
		IsPaused:      l.paused,
	}
}

// TierStatus reports a tier's capacity consumption
func (l *Ledger) TierStatus(tier domain.TierID) (domain.TierStatus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts, ok := l.tiers[tier]
	if !ok {
		return domain.TierStatus{}, domain.ErrTierNotFound
	}

	remaining := uint32(0)
	if ts.config.Allocated > ts.minted {
		remaining = ts.config.Allocated - ts.minted
	}

	return domain.TierStatus{
		CollectionID: l.collectionID,
		Tier:         tier,
		Allocated:    ts.config.Allocated,
		Minted:       ts.minted,
		Remaining:    remaining,
	}, nil
}

// TierMinted returns the current minted counters for persistence
func (l *Ledger) TierMinted() map[domain.TierID]uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[domain.TierID]uint32, len(l.tiers))
	for id, ts := range l.tiers {
		out[id] = ts.minted
	}
	return out
}

// BurnedSlots reports how many released slots were permanently burned
func (l *Ledger) BurnedSlots() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.burned
}
