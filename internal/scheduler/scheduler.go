// Package scheduler runs named callbacks on fixed intervals.
//
// Each registered trigger fires once when Run starts and then again whenever
// its own timer expires, until the context is cancelled or Stop is called.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/utils"
)

// MinInterval is the shortest interval a trigger may request.
const MinInterval = 10 * time.Millisecond

type trigger struct {
	name     string
	next     func() time.Duration
	callback func(context.Context)
}

func (t trigger) delay() time.Duration {
	d := t.next()
	if d < MinInterval {
		return MinInterval
	}
	return d
}

type Scheduler struct {
	mu       sync.Mutex
	triggers []trigger
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func New() *Scheduler {
	return &Scheduler{}
}

// RegisterPeriodicTrigger adds callback under name. intervalHint is rounded up
// to MinInterval. Triggers must be registered before Run.
func (s *Scheduler) RegisterPeriodicTrigger(name string, intervalHint time.Duration, callback func(context.Context)) error {
	return s.RegisterTrigger(name, func() time.Duration { return intervalHint }, callback)
}

// RegisterTrigger adds callback under name and asks next for the delay before
// each following fire, so the schedule can follow the clock.
func (s *Scheduler) RegisterTrigger(name string, next func() time.Duration, callback func(context.Context)) error {
	if callback == nil {
		return fmt.Errorf("trigger %q has no callback", name)
	}
	if next == nil {
		return fmt.Errorf("trigger %q has no schedule", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("cannot register trigger %q while scheduler is running", name)
	}
	for _, t := range s.triggers {
		if t.name == name {
			return fmt.Errorf("trigger %q already registered", name)
		}
	}
	s.triggers = append(s.triggers, trigger{name: name, next: next, callback: callback})
	return nil
}

// Triggers lists registered trigger names in registration order.
func (s *Scheduler) Triggers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.triggers))
	for i, t := range s.triggers {
		names[i] = t.name
	}
	return names
}

// Run blocks until ctx is cancelled or Stop is called, then waits for any
// in-flight callbacks to return.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	s.running = true
	s.cancel = cancel
	triggers := append([]trigger(nil), s.triggers...)
	s.mu.Unlock()

	for _, t := range triggers {
		s.wg.Add(1)
		go s.loop(ctx, t)
	}
	logger.Info("Scheduler started", "triggers", len(triggers))

	<-ctx.Done()
	s.wg.Wait()

	s.mu.Lock()
	s.running = false
	s.cancel = nil
	s.mu.Unlock()
	cancel()

	logger.Info("Scheduler stopped")
	return nil
}

// Stop cancels a running scheduler. It is safe to call at any time.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) loop(ctx context.Context, t trigger) {
	defer s.wg.Done()

	s.fire(ctx, t)

	timer := time.NewTimer(t.delay())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.fire(ctx, t)
			timer.Reset(t.delay())
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, t trigger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Trigger panicked", "trigger", t.name, "panic", r)
		}
	}()
	logger.Debug("Firing trigger", "trigger", t.name)
	t.callback(ctx)
}

// DayBoundary returns how long until the next midnight in loc, capped at max.
// Use it to size the reset trigger so it fires soon after the day changes.
func DayBoundary(now time.Time, loc *time.Location, max time.Duration) time.Duration {
	until := utils.NextMidnight(now, loc).Sub(now)
	if max > 0 && until > max {
		return max
	}
	if until < MinInterval {
		return MinInterval
	}
	return until
}
