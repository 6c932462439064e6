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

package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/pkg/errors"
)

type fakeSyncer struct {
	mu    sync.Mutex
	count int
	err   error
	block chan struct{}
	began chan struct{}
}

func (f *fakeSyncer) Sync(ctx context.Context) error {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()

	if f.began != nil {
		f.began <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}

	return f.err
}

func (f *fakeSyncer) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.count
}

func TestRunOnce(t *testing.T) {
	f := &fakeSyncer{}
	s := New(f, time.Minute, nil)

	ran, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, ran, true, "run mismatch")
	assert.Equal(t, f.Count(), 1, "count mismatch")
}

func TestRunOnceError(t *testing.T) {
	f := &fakeSyncer{err: errors.New("boom")}
	s := New(f, time.Minute, nil)

	ran, err := s.RunOnce(context.Background())

	assert.Equal(t, ran, true, "run mismatch")
	assert.Equal(t, errors.Cause(err), f.err, "error mismatch")
}

func TestRunOnceSkipsOverlap(t *testing.T) {
	f := &fakeSyncer{
		block: make(chan struct{}),
		began: make(chan struct{}, 1),
	}
	s := New(f, time.Minute, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := s.RunOnce(context.Background()); err != nil {
			t.Error(err)
		}
	}()
	<-f.began

	ran, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ran, false, "overlapping run should be skipped")

	close(f.block)
	<-done
	assert.Equal(t, f.Count(), 1, "count mismatch")

	f.block = nil
	f.began = nil
	ran, err = s.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ran, true, "run after completion mismatch")
}

func TestStart(t *testing.T) {
	t.Run("invalid interval", func(t *testing.T) {
		s := New(&fakeSyncer{}, time.Millisecond, nil)

		assert.NotEqual(t, s.Start(context.Background()), nil, "error mismatch")
	})

	t.Run("start twice", func(t *testing.T) {
		s := New(&fakeSyncer{}, time.Hour, nil)
		if err := s.Start(context.Background()); err != nil {
			t.Fatal(err)
		}
		defer s.Stop()

		assert.NotEqual(t, s.Start(context.Background()), nil, "error mismatch")
	})

	t.Run("stop without start", func(t *testing.T) {
		s := New(&fakeSyncer{}, time.Hour, nil)
		s.Stop()
	})

	t.Run("restart after stop", func(t *testing.T) {
		s := New(&fakeSyncer{}, time.Hour, nil)
		if err := s.Start(context.Background()); err != nil {
			t.Fatal(err)
		}
		s.Stop()

		if err := s.Start(context.Background()); err != nil {
			t.Fatal(err)
		}
		s.Stop()
	})
}
