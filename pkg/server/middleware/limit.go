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

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	"golang.org/x/time/rate"
)

const (
	// requestsPerSecond is the sustained request rate allowed per client address
	requestsPerSecond = 50
	// requestBurst is the number of requests a client can make at once
	requestBurst = 100
	// visitorIdleTTL is how long an address is remembered after its last request
	visitorIdleTTL = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter rate limits requests per client address
type Limiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	clock     clock.Clock
	perSecond float64
	burst     int
}

// NewLimiter returns a limiter allowing perSecond requests per client
// address with the given burst
func NewLimiter(c clock.Clock, perSecond float64, burst int) *Limiter {
	return &Limiter{
		visitors:  map[string]*visitor{},
		clock:     c,
		perSecond: perSecond,
		burst:     burst,
	}
}

// DefaultLimiter is the limiter of the API routes
var DefaultLimiter = NewLimiter(clock.New(), requestsPerSecond, requestBurst)

// Allow takes a token for the address. If none is left, it returns false
// and the time until one is available.
func (l *Limiter) Allow(addr string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	v, ok := l.visitors[addr]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.perSecond), l.burst)}
		l.visitors[addr] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}

	return true, 0
}

// Sweep forgets the addresses that have been idle for a while and returns
// how many were removed
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	var n int
	for addr, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTTL {
			delete(l.visitors, addr)
			n++
		}
	}

	return n
}

// lookupIP returns the address of the client, preferring the headers set by
// a reverse proxy
func lookupIP(r *http.Request) string {
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		parts := strings.Split(forwardedFor, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}

// retryAfter formats a delay as whole seconds, rounded up
func retryAfter(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}

// Limit is a middleware to rate limit the handler
func (l *Limiter) Limit(next http.Handler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := lookupIP(r)

		ok, wait := l.Allow(addr)
		if !ok {
			log.WithFields(log.Fields{
				"ip": addr,
			}).Warn("Too many requests")

			w.Header().Set("Retry-After", retryAfter(wait))
			RespondError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ApplyLimit applies the default limiter if rateLimit is set
func ApplyLimit(h http.HandlerFunc, rateLimit bool) http.Handler {
	if rateLimit {
		return DefaultLimiter.Limit(h)
	}

	return h
}
