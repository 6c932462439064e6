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

package store

import (
	"context"
	"net/http"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/queue"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
)

// route is where a mutation goes after it was applied locally
type route int

const (
	// routeLocal keeps the change local only
	routeLocal route = iota
	// routeQueue records the change in the offline queue
	routeQueue
	// routeSend sends the change to the server now
	routeSend
)

// command describes a state transition. T is the value produced by apply
// and handed to every other step. R is the server response.
type command[T, R any] struct {
	name   string
	itemID string

	// apply validates and applies the change. An error leaves the state
	// untouched.
	apply func(st *State) (T, error)
	// route overrides the default routing for the item.
	route func(st *State, v T, r route) route
	// offline returns the queue entries recording the change.
	offline func(st *State, v T) []queue.Entry
	// send performs the network request. It runs without the lock.
	send func(ctx context.Context, v T) (R, error)
	// confirm merges the server response. It may return a follow-up to
	// run without the lock.
	confirm func(st *State, v T, res R) func(ctx context.Context)
	// revert undoes the change after a failed request. Without revert, the
	// change stays and is queued for replay.
	revert func(st *State, v T)
	// done runs last on every path.
	done func(st *State, v T)
}

// run applies the command through the optimistic protocol: apply and
// persist under the lock, send without it, then confirm, queue or revert
// against the current state.
func run[T, R any](ctx context.Context, s *Store, c command[T, R]) error {
	s.mu.Lock()

	v, err := c.apply(&s.state)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	r := s.routeLocked(c.itemID)
	if c.route != nil {
		r = c.route(&s.state, v, r)
	}
	if c.send == nil && r == routeSend {
		r = routeLocal
	}

	if r == routeQueue && c.offline != nil {
		s.enqueueLocked(c.offline(&s.state, v)...)
	}
	if r != routeSend {
		if c.done != nil {
			c.done(&s.state, v)
		}
		s.persistLocked()
		s.mu.Unlock()
		return nil
	}

	s.persistLocked()
	s.mu.Unlock()

	res, err := c.send(ctx, v)

	s.mu.Lock()
	var followUp func(ctx context.Context)
	if err == nil {
		if c.confirm != nil {
			followUp = c.confirm(&s.state, v, res)
		}
	} else {
		s.handleFailureLocked(c.name, err, func() {
			if c.revert != nil {
				c.revert(&s.state, v)
			} else if c.offline != nil {
				s.enqueueLocked(c.offline(&s.state, v)...)
			}
		}, func() {
			if c.offline != nil {
				s.enqueueLocked(c.offline(&s.state, v)...)
			}
		})
	}
	if c.done != nil {
		c.done(&s.state, v)
	}
	s.persistLocked()
	s.mu.Unlock()

	if followUp != nil {
		followUp(ctx)
	}

	return nil
}

// handleFailureLocked logs a failed request. An unauthorized response logs
// the session out and calls onUnauthorized; any other failure calls
// onFailure.
func (s *Store) handleFailureLocked(op string, err error, onFailure, onUnauthorized func()) {
	kind := syncerr.KindOf(err)
	s.logger.Warnw("request failed", "op", op, "kind", kind.String(), "error", err)

	if kind == syncerr.Unauthorized {
		s.setLoggedOutLocked()
		if onUnauthorized != nil {
			onUnauthorized()
		}
		return
	}

	if onFailure != nil {
		onFailure()
	}
}

// routeLocked returns the default route of a mutation of the given item.
// Items with a temporary id are only queued behind their queued creation;
// otherwise their creation is in flight or still to be synced, and the
// latest local fields are sent then.
func (s *Store) routeLocked(itemID string) route {
	if itemID != "" && items.IsTemporaryID(itemID) {
		if queue.HasCreate(s.state.OfflineQueue, itemID) {
			return routeQueue
		}

		return routeLocal
	}

	if !s.onlineLocked() {
		return routeQueue
	}

	return routeSend
}

// enqueueLocked appends entries to the offline queue. Updates to items
// with a temporary id are dropped unless the creation is queued ahead.
func (s *Store) enqueueLocked(entries ...queue.Entry) {
	for _, e := range entries {
		if e.Method != http.MethodPost && items.IsTemporaryID(e.ItemID) && !queue.HasCreate(s.state.OfflineQueue, e.ItemID) {
			continue
		}

		s.state.OfflineQueue = queue.Enqueue(s.state.OfflineQueue, e)
	}
}

// newEntry builds a queue entry, logging a payload that cannot be encoded
func (s *Store) newEntry(method, endpoint string, payload interface{}, itemID string) []queue.Entry {
	e, err := queue.NewEntry(method, endpoint, payload, itemID, s.clock.Now())
	if err != nil {
		s.logger.Errorw("building queue entry", "endpoint", endpoint, "error", err)
		return nil
	}

	return []queue.Entry{e}
}

// setLoggedOutLocked demotes the session after the server rejected it
func (s *Store) setLoggedOutLocked() {
	if !s.state.IsAuthenticated {
		return
	}

	s.state.IsAuthenticated = false
	s.state.User = nil
	s.remote.SetToken("")

	if s.kv != nil {
		if err := s.kv.Delete(consts.SystemSessionKey, consts.SystemSessionUser); err != nil {
			s.logger.Errorw("clearing session", "error", err)
		}
	}
}
