/*
Copyright 2025 Elevion Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultTimeout bounds a single attempt when the caller does not set one.
const DefaultTimeout = 30 * time.Second

// client is shared across calls. The zero Transport resolves to
// http.DefaultTransport, which keeps the wrapper mockable in tests.
var client = &http.Client{}

// Error is the typed classification of a failed call. A zero Status means the
// request never produced an HTTP response (transport failure or timeout).
type Error struct {
	Status     int             `json:"status"`
	StatusText string          `json:"status_text"`
	Body       json.RawMessage `json:"body,omitempty"`
	Timeout    bool            `json:"timeout"`
	cause      error
}

func (e *Error) Error() string {
	if e.Timeout {
		return "request timed out"
	}
	if e.Status != 0 {
		return fmt.Sprintf("request failed with status %d: %s", e.Status, string(e.Body))
	}
	return fmt.Sprintf("request failed: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable reports whether the failure is worth retrying: timeouts,
// transport failures and 5xx responses. 4xx responses are caller mistakes and
// are never retried.
func (e *Error) Retryable() bool {
	if e.Timeout || e.Status == 0 {
		return true
	}
	return e.Status >= 500
}

// IsTimeout reports whether err represents a timed-out call.
func IsTimeout(err error) bool {
	var reqErr *Error
	return errors.As(err, &reqErr) && reqErr.Timeout
}

// Options controls a Do call. Retries is the number of additional attempts
// made after a retryable failure; 4xx responses stop the loop immediately.
type Options struct {
	Timeout time.Duration
	Retries int
	Headers map[string]string
}

// Do issues an HTTP request with a JSON payload and decodes a 2xx JSON
// response into response. Non-2xx responses, transport failures and timeouts
// are always surfaced as *Error, never as raw transport exceptions.
// Retryable failures are retried up to opts.Retries times with exponential
// backoff; each attempt is separately bounded by opts.Timeout.
func Do(ctx context.Context, method, url string, payload, response interface{}, opts Options) error {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	var payloadBytes []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		payloadBytes = b
	}

	operation := func() error {
		return doOnce(ctx, method, url, payloadBytes, response, opts)
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(opts.Retries)),
		ctx,
	)
	return backoff.Retry(operation, bo)
}

func doOnce(ctx context.Context, method, url string, payloadBytes []byte, response interface{}, opts Options) error {
	attemptCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	var body io.Reader
	if payloadBytes != nil {
		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, url, body)
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return &Error{Timeout: true, cause: err}
		}
		if ctx.Err() != nil {
			// caller cancelled, do not keep retrying
			return backoff.Permanent(&Error{cause: err})
		}
		return &Error{cause: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			_ = err
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, StatusText: resp.Status, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, StatusText: resp.Status, Body: raw}
		if !apiErr.Retryable() {
			return backoff.Permanent(apiErr)
		}
		return apiErr
	}

	if response != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, response); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response body: %w", err))
		}
	}
	return nil
}

// ToJsonReq converts a Go object to a JSON-encoded HTTP request payload.
func ToJsonReq(payload interface{}) (*bytes.Buffer, error) {
	c, e := json.Marshal(payload)
	if e != nil {
		return nil, e
	}

	bytePayload := bytes.NewBuffer(c)
	return bytePayload, nil
}

// Call makes a single HTTP request using the provided request object and
// decodes the response into the specified structure. It performs no retries;
// callers that need the reliability wrapper should use Do.
func Call(req *http.Request, response interface{}) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return resp, err
	}

	err = json.NewDecoder(resp.Body).Decode(&response)
	if err != nil {
		return resp, err
	}
	return resp, err
}

// BasicAuth generates a basic HTTP authentication string by encoding the
// provided username and password as "username:password" in base64.
func BasicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}
