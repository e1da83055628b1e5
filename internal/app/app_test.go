package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/affiliate-next/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	stopped  atomic.Bool
	done     chan struct{}
}

func newFakeService(name string, startErr error) *fakeService {
	return &fakeService{name: name, startErr: startErr, done: make(chan struct{})}
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	select {
	case <-ctx.Done():
	case <-s.done:
	}
	return nil
}

func (s *fakeService) Stop(ctx context.Context) error {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.done)
	}
	return nil
}

func TestValidateMode(t *testing.T) {
	cfg := &config.Config{}
	if err := validateMode(cfg, ModeAPI); err != nil {
		t.Fatalf("api mode should be valid: %v", err)
	}
	if err := validateMode(cfg, ModeWorker); err == nil {
		t.Fatalf("worker mode without queue should fail")
	}
	cfg.Queue.Enabled = true
	if err := validateMode(cfg, ModeWorker); err != nil {
		t.Fatalf("worker mode with queue should be valid: %v", err)
	}
	if err := validateMode(cfg, "cron"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestBuildRunnerRejectsNilConfig(t *testing.T) {
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestRunnerStopsAllServicesOnCancel(t *testing.T) {
	first := newFakeService("first", nil)
	second := newFakeService("second", nil)
	runner := NewRunner(first, second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancel should not be reported as error: %v", err)
	}
	if !first.stopped.Load() || !second.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerReturnsStartError(t *testing.T) {
	boom := errors.New("listen failed")
	failing := newFakeService("failing", boom)
	healthy := newFakeService("healthy", nil)

	err := NewRunner(failing, healthy).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want start error, got %v", err)
	}
	if !healthy.stopped.Load() {
		t.Fatalf("healthy service should be stopped after sibling failure")
	}
}
