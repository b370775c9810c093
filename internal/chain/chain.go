// Package chain provides the on-chain query collaborators the engine
// consumes: a wallet's current qualifying-token balance and the age of
// its token account. The engine never talks to the chain anywhere else.
package chain

import (
	"context"
	"time"

	"github.com/analos-labs/launchpad-engine/internal/domain"
)

// Querier defines the chain-query interface for eligibility snapshots
//
//go:generate mockgen -source=chain.go -destination=../mocks/chain.go -package=mocks -mock_names=Querier=MockQuerier
type Querier interface {
	// GetTokenBalance returns the wallet's balance of the qualifying token
	GetTokenBalance(ctx context.Context, wallet domain.WalletID) (uint64, error)
	// GetTokenAccountAge returns how long ago the wallet's token account
	// saw its first activity. Used for the anti-bot holding check.
	GetTokenAccountAge(ctx context.Context, wallet domain.WalletID) (time.Duration, error)
}
