package messaging

import (
	"context"

	"github.com/analos-labs/launchpad-engine/internal/domain"
)

// Publisher defines the interface for publishing events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishMintCommitted publishes a committed mint to the broker
	PublishMintCommitted(ctx context.Context, event *domain.MintCommittedEvent) error
	// PublishCollectionRevealed publishes the one-time reveal of a collection
	PublishCollectionRevealed(ctx context.Context, event *domain.CollectionRevealedEvent) error
	// Close closes the connection
	Close()
}
