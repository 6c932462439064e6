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

package queue

import (
	"context"
	"net/http"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
	"go.uber.org/zap"
)

// Result is what the server returned for a delivered entry. ID is set
// when the entry created a resource.
type Result struct {
	ID        string
	CreatedAt int64
	UpdatedAt int64
}

// Sender delivers a single entry to the server
type Sender interface {
	Send(ctx context.Context, e Entry) (Result, error)
}

// DrainOptions is the session state and callbacks for Drain
type DrainOptions struct {
	IsAuthenticated bool
	IsOfflineMode   bool
	// OnUnauthorized is called once when the server rejects the session.
	OnUnauthorized func()
	// OnCreated is called when a queued POST created a resource under an id
	// different from the entry's item id.
	OnCreated func(e Entry, res Result)
	// OnDropped is called for each entry given up after MaxAttempts.
	OnDropped func(e Entry, err error)
	Logger    *zap.SugaredLogger
}

// Drain replays the entries in order, one at a time, and returns the entries
// still pending. Delivered entries are removed. An unauthorized response
// stops the drain and keeps the failed entry and everything after it. Other
// failures count an attempt and keep the entry until MaxAttempts is reached.
func Drain(ctx context.Context, q []Entry, s Sender, opts DrainOptions) []Entry {
	if !opts.IsAuthenticated || opts.IsOfflineMode || len(q) == 0 {
		return q
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	work := make([]Entry, len(q))
	copy(work, q)

	var ret []Entry
	for i := 0; i < len(work); i++ {
		e := work[i]

		res, err := s.Send(ctx, e)
		if err == nil {
			if e.Method == http.MethodPost && e.ItemID != "" && res.ID != "" && res.ID != e.ItemID {
				rest := RewriteItemID(work[i+1:], e.ItemID, res.ID)
				copy(work[i+1:], rest)

				if opts.OnCreated != nil {
					opts.OnCreated(e, res)
				}
			}

			logger.Debugw("delivered queued request", "method", e.Method, "endpoint", e.Endpoint)
			continue
		}

		kind := syncerr.KindOf(err)
		if kind == syncerr.Unauthorized {
			logger.Warnw("session rejected while draining queue", "endpoint", e.Endpoint)
			if opts.OnUnauthorized != nil {
				opts.OnUnauthorized()
			}

			return append(ret, work[i:]...)
		}

		if kind == syncerr.NotFound && e.Method == http.MethodDelete {
			logger.Debugw("queued delete target already gone", "endpoint", e.Endpoint)
			continue
		}

		e.Attempts++
		if e.Attempts >= MaxAttempts {
			logger.Errorw("dropping queued request after repeated failures",
				"method", e.Method, "endpoint", e.Endpoint, "itemId", e.ItemID, "attempts", e.Attempts, "error", err)
			if opts.OnDropped != nil {
				opts.OnDropped(e, err)
			}
			continue
		}

		logger.Warnw("queued request failed", "method", e.Method, "endpoint", e.Endpoint, "attempts", e.Attempts, "error", err)
		ret = append(ret, e)
	}

	return ret
}
