/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package scheduler runs the background sync of the store on an interval
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron"
	"go.uber.org/zap"
)

// Syncer is the work run on every tick
type Syncer interface {
	Sync(ctx context.Context) error
}

// Scheduler runs a Syncer periodically. A tick is skipped while the
// previous run is still in progress.
type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	running bool
	cron    *cron.Cron
	cancel  context.CancelFunc
}

// New returns a scheduler running s every interval
func New(s Syncer, interval time.Duration, logger *zap.SugaredLogger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Scheduler{
		syncer:   s,
		interval: interval,
		logger:   logger,
	}
}

// Start schedules the sync. Runs use a context derived from ctx and
// cancelled by Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval < time.Second {
		return errors.Errorf("invalid sync interval %s", s.interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return errors.New("scheduler already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New()
	if err := c.AddFunc("@every "+s.interval.String(), func() {
		if _, err := s.RunOnce(runCtx); err != nil {
			s.logger.Warnw("background sync failed", "error", err)
		}
	}); err != nil {
		cancel()
		return errors.Wrap(err, "scheduling sync")
	}

	c.Start()
	s.cron = c
	s.cancel = cancel
	s.logger.Infow("background sync started", "interval", s.interval.String())

	return nil
}

// Stop stops scheduling runs and cancels the one in progress
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return
	}

	s.cron.Stop()
	s.cancel()
	s.cron = nil
	s.cancel = nil
}

// RunOnce runs the sync now unless a run is already in progress. It
// returns false if the run was skipped.
func (s *Scheduler) RunOnce(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Debugw("skipping sync, previous run still in progress")
		return false, nil
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := time.Now()
	if err := s.syncer.Sync(ctx); err != nil {
		return true, errors.Wrap(err, "syncing")
	}
	s.logger.Debugw("sync finished", "duration", time.Since(start).String())

	return true, nil
}
