package chain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeSince(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	// 72 hours ago
	blockTime := now.Add(-72 * time.Hour).Unix()
	assert.Equal(t, 72*time.Hour, ageSince(blockTime, now))

	// Future block time (clock skew) clamps to zero
	assert.Equal(t, time.Duration(0), ageSince(now.Add(time.Hour).Unix(), now))

	// Exactly now
	assert.Equal(t, time.Duration(0), ageSince(now.Unix(), now))
}
