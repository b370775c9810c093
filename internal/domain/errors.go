package domain

import (
	"errors"
	"fmt"
)

// RejectionReason is a stable, machine-readable code attached to every
// user-facing rejection so callers can distinguish "try a different
// tier" from "wait and retry" from "this collection is done".
type RejectionReason string

const (
	ReasonAlreadyMinted       RejectionReason = "already_minted"
	ReasonHoldingPeriodNotMet RejectionReason = "holding_period_not_met"
	ReasonCollectionPaused    RejectionReason = "collection_paused"
	ReasonSoldOut             RejectionReason = "sold_out"
	ReasonCapacityExceeded    RejectionReason = "capacity_exceeded"
)

// Rejection is an expected, user-facing mint refusal. It is surfaced
// directly and never retried.
type Rejection struct {
	Reason RejectionReason
	// Tier is set for capacity rejections
	Tier TierID
}

func (r *Rejection) Error() string {
	if r.Tier != "" {
		return fmt.Sprintf("mint rejected: %s (tier %s)", r.Reason, r.Tier)
	}
	return fmt.Sprintf("mint rejected: %s", r.Reason)
}

// NewRejection creates a rejection with the given reason
func NewRejection(reason RejectionReason) *Rejection {
	return &Rejection{Reason: reason}
}

// NewCapacityRejection creates a capacity-exceeded rejection for a tier
func NewCapacityRejection(tier TierID) *Rejection {
	return &Rejection{Reason: ReasonCapacityExceeded, Tier: tier}
}

// AsRejection unwraps err into a *Rejection if it is one
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// InvariantViolation indicates the ledger's atomicity guarantee has been
// broken (e.g. minted > allocated). It is fatal for the affected tier:
// all further reservations against it fail with this error rather than
// silently repairing the counters.
type InvariantViolation struct {
	CollectionID string
	Tier         TierID
	Detail       string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation on %s/%s: %s", e.CollectionID, e.Tier, e.Detail)
}

var (
	// ErrCollectionNotFound is returned when a collection ID is unknown
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrTierNotFound is returned when a tier ID is unknown within a collection
	ErrTierNotFound = errors.New("tier not found")

	// ErrReservationNotFound is returned for an unknown or already-released reservation token
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrStorageFailure wraps persistence errors surfaced after the retry budget is exhausted
	ErrStorageFailure = errors.New("storage failure")

	// ErrNotAuthorized is returned when an admin operation is attempted by a non-authority wallet
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidWallet is returned when a wallet address does not decode to a 32-byte key
	ErrInvalidWallet = errors.New("invalid wallet address")
)
