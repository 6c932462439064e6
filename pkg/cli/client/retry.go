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

package client

import (
	"context"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
	"github.com/cenkalti/backoff/v4"
)

// RetryConfig controls retries of idempotent requests
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig returns the retry policy used unless overridden
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2,
	}
}

// backOff returns the schedule of the retries after the first attempt.
// Unset fields keep the defaults of backoff.ExponentialBackOff.
func (c RetryConfig) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if c.InitialDelay > 0 {
		b.InitialInterval = c.InitialDelay
	}
	if c.MaxDelay > 0 {
		b.MaxInterval = c.MaxDelay
	}
	if c.Multiplier >= 1 {
		b.Multiplier = c.Multiplier
	}
	b.MaxElapsedTime = 0

	retries := c.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// retryable reports whether a failure is worth another attempt. Only
// transport errors and server side failures are.
func retryable(err error) bool {
	return syncerr.KindOf(err) == syncerr.NetworkFailure
}

// retryDo calls fn until it succeeds, returns a non retryable error, the
// attempts are exhausted or the context is done. The error of the last
// attempt is returned in every case.
func retryDo(ctx context.Context, cfg RetryConfig, fn func() error) error {
	var last error
	op := func() error {
		last = fn()
		if last != nil && !retryable(last) {
			return backoff.Permanent(last)
		}

		return last
	}

	err := backoff.Retry(op, cfg.backOff(ctx))
	if err == nil || last == nil {
		return err
	}

	return last
}
