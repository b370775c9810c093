package sweeper_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analos-labs/launchpad-engine/internal/adapter"
	"github.com/analos-labs/launchpad-engine/internal/logger"
	"github.com/analos-labs/launchpad-engine/internal/mocks"
	"github.com/analos-labs/launchpad-engine/internal/sweeper"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func testConfig() *sweeper.ReservationSweeperConfig {
	return &sweeper.ReservationSweeperConfig{
		Interval:       5 * time.Millisecond,
		WorkerPoolSize: 2,
	}
}

func TestReservationSweeperReapsAllCollections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEngine := mocks.NewMockEngine(ctrl)

	// Signal once both collections have been reaped at least once
	reapedBoth := make(chan struct{})
	var mu sync.Mutex
	seen := make(map[string]bool)

	mockEngine.EXPECT().Collections().Return([]string{"genesis-drop", "exclusive-drop"}).AnyTimes()
	mockEngine.EXPECT().ReapCollection(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, collectionID string) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			if !seen[collectionID] {
				seen[collectionID] = true
				if len(seen) == 2 {
					close(reapedBoth)
				}
			}
			return 1, nil
		}).AnyTimes()

	s := sweeper.NewReservationSweeper(testConfig(), mockEngine, adapter.NewClock())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	select {
	case <-reapedBoth:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper never reaped both collections")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestReservationSweeperContinuesAfterReapError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEngine := mocks.NewMockEngine(ctrl)

	// A failing collection must not stop the others from being swept
	reapedHealthy := make(chan struct{})
	var closed bool

	mockEngine.EXPECT().Collections().Return([]string{"broken-drop", "genesis-drop"}).AnyTimes()
	mockEngine.EXPECT().ReapCollection(gomock.Any(), "broken-drop").
		Return(0, errors.New("persist failed")).AnyTimes()
	mockEngine.EXPECT().ReapCollection(gomock.Any(), "genesis-drop").
		DoAndReturn(func(_ context.Context, _ string) (int, error) {
			if !closed {
				closed = true
				close(reapedHealthy)
			}
			return 0, nil
		}).AnyTimes()

	s := sweeper.NewReservationSweeper(testConfig(), mockEngine, adapter.NewClock())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	select {
	case <-reapedHealthy:
	case <-time.After(2 * time.Second):
		t.Fatal("healthy collection was never reaped")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))
	<-done
}

func TestReservationSweeperStartTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEngine := mocks.NewMockEngine(ctrl)
	mockEngine.EXPECT().Collections().Return(nil).AnyTimes()

	s := sweeper.NewReservationSweeper(testConfig(), mockEngine, adapter.NewClock())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	// Give the first Start time to claim the running flag
	time.Sleep(20 * time.Millisecond)
	err := s.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))
	<-done
}

func TestReservationSweeperStopBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := sweeper.NewReservationSweeper(testConfig(), mocks.NewMockEngine(ctrl), adapter.NewClock())

	// Stopping a sweeper that never started is a no-op
	require.NoError(t, s.Stop(context.Background()))
}
