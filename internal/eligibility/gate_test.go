package eligibility_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analos-labs/launchpad-engine/internal/domain"
	"github.com/analos-labs/launchpad-engine/internal/eligibility"
)

func testCollection() *domain.Collection {
	return &domain.Collection{
		ID:        "exclusive",
		MaxSupply: 100,
		Tiers: []domain.TierConfig{
			{ID: domain.TierTeam, Free: true, Wallets: []domain.WalletID{"team-wallet"}},
			{ID: domain.TierWhitelist1, Allocated: 10, RequiresBalance: 1_000_000},
			{ID: domain.TierPublic, Allocated: 90},
		},
	}
}

func openStatus() domain.CollectionStatus {
	return domain.CollectionStatus{CurrentSupply: 10, MaxSupply: 100}
}

func TestCheckRejectionOrdering(t *testing.T) {
	gate := eligibility.NewGate(testCollection())

	tests := []struct {
		name   string
		snap   domain.EligibilitySnapshot
		status domain.CollectionStatus
		reason domain.RejectionReason
	}{
		{
			name:   "prior mint wins over everything",
			snap:   domain.EligibilitySnapshot{HasPriorMint: true},
			status: domain.CollectionStatus{IsPaused: true},
			reason: domain.ReasonAlreadyMinted,
		},
		{
			name:   "paused",
			snap:   domain.EligibilitySnapshot{},
			status: domain.CollectionStatus{IsPaused: true, MaxSupply: 100},
			reason: domain.ReasonCollectionPaused,
		},
		{
			name:   "sold out",
			snap:   domain.EligibilitySnapshot{},
			status: domain.CollectionStatus{CurrentSupply: 100, MaxSupply: 100},
			reason: domain.ReasonSoldOut,
		},
		{
			name: "holding period not met",
			snap: domain.EligibilitySnapshot{
				TokenBalance:    2_000_000,
				HoldingDuration: 70 * time.Hour,
			},
			status: openStatus(),
			reason: domain.ReasonHoldingPeriodNotMet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rejection := gate.Check(tt.snap, tt.status)
			require.NotNil(t, rejection)
			assert.Equal(t, tt.reason, rejection.Reason)
		})
	}
}

func TestCheckAntiBotWindow(t *testing.T) {
	gate := eligibility.NewGate(testCollection())

	// 70h with a qualifying balance: rejected
	rejection := gate.Check(domain.EligibilitySnapshot{
		TokenBalance:    1_500_000,
		HoldingDuration: 70 * time.Hour,
	}, openStatus())
	require.NotNil(t, rejection)
	assert.Equal(t, domain.ReasonHoldingPeriodNotMet, rejection.Reason)

	// Same wallet at 73h: eligible
	rejection = gate.Check(domain.EligibilitySnapshot{
		TokenBalance:    1_500_000,
		HoldingDuration: 73 * time.Hour,
	}, openStatus())
	assert.Nil(t, rejection)
}

func TestCheckZeroBalanceFallsThroughToPublic(t *testing.T) {
	gate := eligibility.NewGate(testCollection())

	// No qualifying balance: holding period does not apply
	rejection := gate.Check(domain.EligibilitySnapshot{
		TokenBalance:    0,
		HoldingDuration: 0,
	}, openStatus())
	assert.Nil(t, rejection)

	// Below the minimum qualifying balance: also public, also exempt
	rejection = gate.Check(domain.EligibilitySnapshot{
		TokenBalance:    500,
		HoldingDuration: time.Hour,
	}, openStatus())
	assert.Nil(t, rejection)
}

func TestCheckHoldingPeriodOverride(t *testing.T) {
	col := testCollection()
	col.HoldingPeriod = 24 * time.Hour
	gate := eligibility.NewGate(col)

	assert.Equal(t, 24*time.Hour, gate.HoldingPeriod())

	rejection := gate.Check(domain.EligibilitySnapshot{
		TokenBalance:    2_000_000,
		HoldingDuration: 25 * time.Hour,
	}, openStatus())
	assert.Nil(t, rejection)
}
