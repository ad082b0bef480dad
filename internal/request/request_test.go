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
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	var out struct {
		Message string `json:"message"`
	}
	err := Do(context.Background(), http.MethodPost, srv.URL, map[string]string{"q": "hi"}, &out, Options{
		Headers: map[string]string{"Authorization": "Bearer token"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Message)
}

func TestDoNeverRetriesClientErrors(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad input"}`))
	}))
	defer srv.Close()

	err := Do(context.Background(), http.MethodGet, srv.URL, nil, nil, Options{Retries: 5})
	require.Error(t, err)

	reqErr, ok := err.(*Error)
	require.True(t, ok, "expected a typed *Error, got %T", err)
	assert.Equal(t, http.StatusBadRequest, reqErr.Status)
	assert.False(t, reqErr.Retryable())
	assert.JSONEq(t, `{"error":"bad input"}`, string(reqErr.Body))
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}

func TestDoRetriesServerErrors(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"message":"recovered"}`))
	}))
	defer srv.Close()

	var out struct {
		Message string `json:"message"`
	}
	err := Do(context.Background(), http.MethodGet, srv.URL, nil, &out, Options{Retries: 3})
	require.NoError(t, err)
	assert.Equal(t, "recovered", out.Message)
	assert.EqualValues(t, 3, atomic.LoadInt64(&calls))
}

func TestDoSurfacesServerErrorAfterRetries(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := Do(context.Background(), http.MethodGet, srv.URL, nil, nil, Options{Retries: 2})
	require.Error(t, err)

	reqErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	assert.True(t, reqErr.Retryable())
	assert.EqualValues(t, 3, atomic.LoadInt64(&calls)) // first attempt + 2 retries
}

func TestDoTimeoutIsBoundedAndTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	start := time.Now()
	err := Do(context.Background(), http.MethodGet, srv.URL, nil, nil, Options{Timeout: 100 * time.Millisecond})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Less(t, elapsed, time.Second, "call must reject within the timeout plus a small margin")
}

func TestDoTransportErrorIsTyped(t *testing.T) {
	// Closed port: the request never produces an HTTP response.
	err := Do(context.Background(), http.MethodGet, "http://127.0.0.1:1", nil, nil, Options{Timeout: time.Second})
	require.Error(t, err)

	reqErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 0, reqErr.Status)
	assert.False(t, IsTimeout(err))
}

func TestToJsonReq(t *testing.T) {
	buf, err := ToJsonReq(map[string]string{"name": "Elevion"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Elevion"}`, buf.String())
}

func TestBasicAuth(t *testing.T) {
	assert.Equal(t, "dXNlcjpwYXNz", BasicAuth("user", "pass"))
}
