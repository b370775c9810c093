package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"

	"github.com/analos-labs/launchpad-engine/internal/adapter"
	"github.com/analos-labs/launchpad-engine/internal/domain"
)

// SolanaConfig holds Solana RPC configuration
type SolanaConfig struct {
	// RPCURL is the JSON-RPC endpoint; defaults to mainnet-beta
	RPCURL string
	// TokenMint is the qualifying token's mint address
	TokenMint string
}

type solanaQuerier struct {
	rpc       *client.Client
	tokenMint string
	clock     adapter.Clock
}

// NewSolanaQuerier creates a Querier backed by a Solana RPC node
func NewSolanaQuerier(cfg SolanaConfig, clock adapter.Clock) Querier {
	url := cfg.RPCURL
	if url == "" {
		url = rpc.MainnetRPCEndpoint
	}
	return &solanaQuerier{
		rpc:       client.NewClient(url),
		tokenMint: cfg.TokenMint,
		clock:     clock,
	}
}

// GetTokenBalance sums the wallet's token accounts for the qualifying mint
func (q *solanaQuerier) GetTokenBalance(ctx context.Context, wallet domain.WalletID) (uint64, error) {
	accounts, err := q.rpc.GetTokenAccountsByOwnerByMint(ctx, wallet.String(), q.tokenMint)
	if err != nil {
		return 0, fmt.Errorf("failed to get token accounts for %s: %w", wallet, err)
	}

	var total uint64
	for _, account := range accounts {
		total += account.Amount
	}
	return total, nil
}

// GetTokenAccountAge reports the time since the wallet's oldest observed
// transaction. A wallet with no history has zero age and therefore never
// passes the holding-period check for discounted tiers.
func (q *solanaQuerier) GetTokenAccountAge(ctx context.Context, wallet domain.WalletID) (time.Duration, error) {
	signatures, err := q.rpc.GetSignaturesForAddress(ctx, wallet.String())
	if err != nil {
		return 0, fmt.Errorf("failed to get signatures for %s: %w", wallet, err)
	}

	var oldest *int64
	for i := range signatures {
		blockTime := signatures[i].BlockTime
		if blockTime == nil {
			continue
		}
		if oldest == nil || *blockTime < *oldest {
			oldest = blockTime
		}
	}
	if oldest == nil {
		return 0, nil
	}

	return ageSince(*oldest, q.clock.Now()), nil
}

// ageSince converts a unix block time to an age relative to now,
// clamping future timestamps (clock skew) to zero.
func ageSince(blockTime int64, now time.Time) time.Duration {
	age := now.Sub(time.Unix(blockTime, 0))
	if age < 0 {
		return 0
	}
	return age
}
