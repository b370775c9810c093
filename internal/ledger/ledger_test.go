package ledger_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analos-labs/launchpad-engine/internal/adapter"
	"github.com/analos-labs/launchpad-engine/internal/domain"
	"github.com/analos-labs/launchpad-engine/internal/ledger"
)

// fakeClock lets tests move time forward deterministically
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *fakeClock) Sleep(d time.Duration)           {}
func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.Now().Add(d)
	return ch
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ adapter.Clock = (*fakeClock)(nil)

func testCollection() *domain.Collection {
	return &domain.Collection{
		ID:              "exclusive",
		MaxSupply:       10,
		RevealThreshold: 5,
		Tiers: []domain.TierConfig{
			{ID: domain.TierWhitelist1, Allocated: 3, RequiresBalance: 1_000_000},
			{ID: domain.TierPublic, Allocated: 10},
		},
	}
}

func TestReserveAssignsDenseIndices(t *testing.T) {
	l := ledger.New(testCollection(), nil, time.Minute, newFakeClock())

	for want := uint64(0); want < 3; want++ {
		res, err := l.Reserve(domain.TierWhitelist1)
		require.NoError(t, err)
		assert.Equal(t, want, res.MintIndex)
	}

	_, err := l.Reserve(domain.TierWhitelist1)
	rejection, ok := domain.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonCapacityExceeded, rejection.Reason)
	assert.Equal(t, domain.TierWhitelist1, rejection.Tier)
}

func TestReserveUnknownTier(t *testing.T) {
	l := ledger.New(testCollection(), nil, time.Minute, newFakeClock())

	_, err := l.Reserve("vip")
	assert.ErrorIs(t, err, domain.ErrTierNotFound)
}

func TestCapacityInvariantUnderConcurrency(t *testing.T) {
	const attempts = 64
	const capacity = 3

	l := ledger.New(testCollection(), nil, time.Minute, newFakeClock())

	var wg sync.WaitGroup
	results := make(chan *ledger.Reservation, attempts)
	rejections := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := l.Reserve(domain.TierWhitelist1)
			if err != nil {
				rejections <- err
				return
			}
			results <- res
		}()
	}
	wg.Wait()
	close(results)
	close(rejections)

	seen := map[uint64]bool{}
	for res := range results {
		assert.False(t, seen[res.MintIndex], "duplicate mint index %d", res.MintIndex)
		seen[res.MintIndex] = true
	}
	assert.Len(t, seen, capacity, "exactly C reservations must succeed")

	rejected := 0
	for err := range rejections {
		rejection, ok := domain.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, domain.ReasonCapacityExceeded, rejection.Reason)
		rejected++
	}
	assert.Equal(t, attempts-capacity, rejected)
}

func TestSoldOut(t *testing.T) {
	col := testCollection()
	col.MaxSupply = 2
	l := ledger.New(col, nil, time.Minute, newFakeClock())

	_, err := l.Reserve(domain.TierPublic)
	require.NoError(t, err)
	_, err = l.Reserve(domain.TierPublic)
	require.NoError(t, err)

	_, err = l.Reserve(domain.TierPublic)
	rejection, ok := domain.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonSoldOut, rejection.Reason)
}

func TestReleaseRollsBackTopIndex(t *testing.T) {
	l := ledger.New(testCollection(), nil, time.Minute, newFakeClock())

	res, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)
	require.Equal(t, uint64(0), res.MintIndex)

	require.NoError(t, l.Release(res.Token))
	assert.Equal(t, uint64(0), l.Status().CurrentSupply)
	assert.Equal(t, uint64(0), l.BurnedSlots())

	// Index 0 is reusable because nothing higher exists
	res, err = l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), res.MintIndex)
}

func TestReleaseBurnsSlotBelowCommittedIndex(t *testing.T) {
	l := ledger.New(testCollection(), nil, time.Minute, newFakeClock())

	lower, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)
	higher, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)

	_, err = l.Commit(higher.Token)
	require.NoError(t, err)

	// Releasing the lower slot after a higher commit burns it
	require.NoError(t, l.Release(lower.Token))
	assert.Equal(t, uint64(1), l.BurnedSlots())
	assert.Equal(t, uint64(2), l.Status().CurrentSupply)

	// The burned index is never reassigned
	next, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next.MintIndex)
}

func TestReleaseBurnsSlotBelowOutstandingReservation(t *testing.T) {
	l := ledger.New(testCollection(), nil, time.Minute, newFakeClock())

	lower, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)
	_, err = l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)

	// The higher reservation is uncommitted but already holds index 1,
	// so index 0 cannot be rolled back without risking reuse.
	require.NoError(t, l.Release(lower.Token))
	assert.Equal(t, uint64(1), l.BurnedSlots())
	assert.Equal(t, uint64(2), l.Status().CurrentSupply)
}

func TestCommitIdempotent(t *testing.T) {
	l := ledger.New(testCollection(), nil, time.Minute, newFakeClock())

	res, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)

	first, err := l.Commit(res.Token)
	require.NoError(t, err)
	second, err := l.Commit(res.Token)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Release after commit is a no-op
	require.NoError(t, l.Release(res.Token))
	status, err := l.TierStatus(domain.TierWhitelist1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), status.Minted)
}

func TestCommitUnknownToken(t *testing.T) {
	l := ledger.New(testCollection(), nil, time.Minute, newFakeClock())

	res, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)
	require.NoError(t, l.Release(res.Token))

	_, err = l.Commit(res.Token)
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestReapExpired(t *testing.T) {
	clock := newFakeClock()
	l := ledger.New(testCollection(), nil, time.Minute, clock)

	expiring, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)
	committed, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)
	_, err = l.Commit(committed.Token)
	require.NoError(t, err)

	// Nothing has expired yet
	assert.Empty(t, l.ReapExpired())

	clock.Advance(2 * time.Minute)
	expired := l.ReapExpired()
	require.Len(t, expired, 1)
	assert.Equal(t, expiring.Token, expired[0].Token)

	// The committed reservation survives the reaper
	status, err := l.TierStatus(domain.TierWhitelist1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), status.Minted)

	// Reaping again is a no-op
	assert.Empty(t, l.ReapExpired())
}

func TestCommitRetiresReservationFromExpiryTracking(t *testing.T) {
	clock := newFakeClock()
	l := ledger.New(testCollection(), nil, time.Minute, clock)

	res, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)
	index, err := l.Commit(res.Token)
	require.NoError(t, err)

	// A committed token is out of the expiry tracking entirely: the
	// sweep finds nothing even long after its original deadline
	clock.Advance(24 * time.Hour)
	assert.Empty(t, l.ReapExpired())

	// Idempotent commit and no-op release still hold past the TTL
	again, err := l.Commit(res.Token)
	require.NoError(t, err)
	assert.Equal(t, index, again)
	require.NoError(t, l.Release(res.Token))

	status, err := l.TierStatus(domain.TierWhitelist1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), status.Minted)
}

func TestMarkRevealedMonotonic(t *testing.T) {
	l := ledger.New(testCollection(), nil, time.Minute, newFakeClock())

	assert.True(t, l.MarkRevealed())
	assert.False(t, l.MarkRevealed())
	assert.True(t, l.Status().IsRevealed)
}

func TestResumeState(t *testing.T) {
	resume := &ledger.ResumeState{
		CurrentSupply: 4,
		IsRevealed:    false,
		TierMinted:    map[domain.TierID]uint32{domain.TierWhitelist1: 2},
	}
	l := ledger.New(testCollection(), resume, time.Minute, newFakeClock())

	res, err := l.Reserve(domain.TierWhitelist1)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), res.MintIndex)

	_, err = l.Reserve(domain.TierWhitelist1)
	rejection, ok := domain.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonCapacityExceeded, rejection.Reason)
}

func TestCorruptedCountersPoisonTier(t *testing.T) {
	resume := &ledger.ResumeState{
		TierMinted: map[domain.TierID]uint32{domain.TierWhitelist1: 4}, // allocated is 3
	}
	l := ledger.New(testCollection(), resume, time.Minute, newFakeClock())

	_, err := l.Reserve(domain.TierWhitelist1)
	var violation *domain.InvariantViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, domain.TierWhitelist1, violation.Tier)

	// The tier stays halted on every subsequent attempt
	_, err = l.Reserve(domain.TierWhitelist1)
	require.ErrorAs(t, err, &violation)

	// Other tiers are unaffected
	_, err = l.Reserve(domain.TierPublic)
	assert.NoError(t, err)
}
