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

package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/elevionhq/elevion/config"
)

const defaultBaseURL = "https://api.twitter.com"

// ErrNotConfigured is returned when one or more Twitter credentials are
// missing. The credentials-check endpoint reports which ones.
var ErrNotConfigured = errors.New("social: twitter credentials not configured")

// TwitterClient posts to the X v2 API with OAuth1 user context.
type TwitterClient struct {
	httpClient *http.Client
	baseURL    string
	configured bool
}

// NewTwitterClient builds a client from the Twitter section of the
// configuration. An unconfigured client is still returned so callers can
// surface a useful error at posting time instead of at startup.
func NewTwitterClient(cfg *config.Configuration) *TwitterClient {
	tw := cfg.Twitter
	if len(cfg.MissingTwitterCredentials()) > 0 {
		return &TwitterClient{baseURL: defaultBaseURL}
	}

	oauthConfig := oauth1.NewConfig(tw.ApiKey, tw.ApiSecret)
	token := oauth1.NewToken(tw.AccessToken, tw.AccessSecret)
	httpClient := oauthConfig.Client(oauth1.NoContext, token)
	httpClient.Timeout = 15 * time.Second

	return &TwitterClient{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		configured: true,
	}
}

// Configured reports whether all four credentials were present.
func (t *TwitterClient) Configured() bool {
	return t.configured
}

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// PostTweet submits content to the platform and returns the external tweet
// ID. A non-2xx response is an upstream error; the caller records it on the
// scheduled post and marks the post failed.
func (t *TwitterClient) PostTweet(ctx context.Context, content string) (string, error) {
	if !t.configured {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(tweetRequest{Text: content})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.baseURL+"/2/tweets", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("twitter request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read twitter response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("twitter returned status %d: %s", resp.StatusCode, string(body))
	}

	var tweet tweetResponse
	if err := json.Unmarshal(body, &tweet); err != nil {
		return "", fmt.Errorf("failed to decode twitter response: %w", err)
	}
	if tweet.Data.ID == "" {
		return "", errors.New("twitter response missing tweet id")
	}
	return tweet.Data.ID, nil
}
