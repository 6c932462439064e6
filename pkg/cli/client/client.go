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

// Package client provides interfaces for interacting with the godnotes server
// and the data structures for responses
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// ErrInvalidLogin is an error for invalid credentials for login
var ErrInvalidLogin = errors.New("wrong credentials")

// ErrContentTypeMismatch is an error for an unexpected response content type
var ErrContentTypeMismatch = errors.New("content type mismatch")

// ErrNoSession is an error for an authorized request made without a session token
var ErrNoSession = errors.New("no session token found")

// DefaultTimeout bounds every request made by the client
const DefaultTimeout = 30 * time.Second

// HTTPError represents an HTTP error response from the server
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(`response %d "%s"`, e.StatusCode, e.Message)
}

// ErrKind classifies the response status
func (e *HTTPError) ErrKind() syncerr.Kind {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return syncerr.Unauthorized
	case http.StatusNotFound:
		return syncerr.NotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return syncerr.ValidationFailure
	default:
		return syncerr.NetworkFailure
	}
}

var contentTypeApplicationJSON = "application/json"

const (
	// clientRateLimitPerSecond is the max requests per second the client will make
	clientRateLimitPerSecond = 50
	// clientRateLimitBurst is the burst capacity for rate limiting
	clientRateLimitBurst = 100
)

// rateLimitedTransport wraps an http.RoundTripper with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

// NewRateLimitedHTTPClient creates an HTTP client with rate limiting
func NewRateLimitedHTTPClient() *http.Client {
	interval := time.Second / time.Duration(clientRateLimitPerSecond)

	transport := &rateLimitedTransport{
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Every(interval), clientRateLimitBurst),
	}
	return &http.Client{
		Transport: transport,
		Timeout:   DefaultTimeout,
	}
}

// Options configures a Client
type Options struct {
	// Version is sent in the Client-Version header.
	Version string
	// HTTPClient defaults to a rate limited client.
	HTTPClient *http.Client
	// Retry is used for idempotent reads. Defaults to DefaultRetryConfig.
	Retry *RetryConfig
}

// Client talks to the Persistence Service
type Client struct {
	endpoint string
	version  string
	hc       *http.Client
	retry    RetryConfig

	mu    sync.RWMutex
	token string
}

// New returns a client for the API at the given endpoint
func New(endpoint string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = NewRateLimitedHTTPClient()
	}

	retry := DefaultRetryConfig()
	if opts.Retry != nil {
		retry = *opts.Retry
	}

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		version:  opts.Version,
		hc:       hc,
		retry:    retry,
	}
}

// SetToken sets the bearer credential used for authorized requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
}

// Token returns the current bearer credential
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// Endpoint returns the API endpoint
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) getReq(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s%s", c.endpoint, path)

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, r)
	if err != nil {
		return nil, errors.Wrap(err, "constructing http request")
	}

	if body != nil {
		req.Header.Set("Content-Type", contentTypeApplicationJSON)
	}
	if c.version != "" {
		req.Header.Set("Client-Version", c.version)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	return req, nil
}

// checkRespErr returns an HTTPError if the response indicates a failure
func checkRespErr(res *http.Response) error {
	if res.StatusCode < 400 {
		return nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "server responded with %d but client could not read the response body", res.StatusCode)
	}

	return &HTTPError{
		StatusCode: res.StatusCode,
		Message:    strings.TrimRight(string(body), "\n"),
	}
}

func checkContentType(res *http.Response) error {
	got := res.Header.Get("Content-Type")
	if !strings.HasPrefix(got, contentTypeApplicationJSON) {
		return errors.Wrapf(ErrContentTypeMismatch, "got: '%s' want: '%s'. Did you configure your endpoint correctly?", got, contentTypeApplicationJSON)
	}

	return nil
}

func marshalPayload(payload interface{}) ([]byte, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		if len(p) == 0 {
			return nil, nil
		}
		return p, nil
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling payload")
		}
		return b, nil
	}
}

// doReq does a http request to the given path in the api endpoint and
// decodes a JSON response into out, if given.
func (c *Client) doReq(ctx context.Context, method, path string, payload, out interface{}) error {
	body, err := marshalPayload(payload)
	if err != nil {
		return err
	}

	req, err := c.getReq(ctx, method, path, body)
	if err != nil {
		return errors.Wrap(err, "getting request")
	}

	log.Debug("HTTP %s %s\n", method, path)

	res, err := c.hc.Do(req)
	if err != nil {
		return syncerr.New(syncerr.NetworkFailure, fmt.Sprintf("%s %s", method, path), err)
	}
	defer res.Body.Close()

	log.Debug("HTTP %d %s\n", res.StatusCode, res.Status)

	if err = checkRespErr(res); err != nil {
		return errors.Wrap(err, "server responded with an error")
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	if err = checkContentType(res); err != nil {
		return errors.Wrap(err, "unexpected Content-Type")
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil && err != io.EOF {
		return errors.Wrap(err, "decoding payload")
	}

	return nil
}

// doAuthorizedReq does a request as the signed in user. Reads are retried on
// transient failures.
func (c *Client) doAuthorizedReq(ctx context.Context, method, path string, payload, out interface{}) error {
	if c.Token() == "" {
		return syncerr.New(syncerr.Unauthorized, fmt.Sprintf("%s %s", method, path), ErrNoSession)
	}

	if method != http.MethodGet {
		return c.doReq(ctx, method, path, payload, out)
	}

	return retryDo(ctx, c.retry, func() error {
		return c.doReq(ctx, method, path, payload, out)
	})
}
