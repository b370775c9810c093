package domain

import "time"

const (
	// DEFAULT_HOLDING_PERIOD is the anti-bot holding requirement applied
	// to discounted tiers when a collection does not override it
	DEFAULT_HOLDING_PERIOD = 72 * time.Hour

	// DEFAULT_RESERVATION_TTL bounds how long a reservation may stay
	// uncommitted before the sweeper releases it
	DEFAULT_RESERVATION_TTL = 5 * time.Minute

	// RARITY_SCORE_RANGE is the modulus applied to the rarity hash
	RARITY_SCORE_RANGE = 100
)
