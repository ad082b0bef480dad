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

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/elevionhq/elevion/config"
	"github.com/elevionhq/elevion/internal/request"
)

// ErrNotConfigured is returned when no API key is set. Callers treat it like
// any other upstream failure and serve their fallback payload.
var ErrNotConfigured = errors.New("llm: api key not configured")

// ErrMalformedReply is returned when the model answered but its text could
// not be decoded into the expected JSON shape. The parse step is a fallible
// boundary: callers must substitute a schema-shaped fallback, never propagate
// raw model text.
var ErrMalformedReply = errors.New("llm: malformed model reply")

// Client calls an OpenAI-compatible chat-completions endpoint (xAI/Grok).
type Client struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
	retries int
}

// NewClient builds a Client from the Grok section of the configuration.
func NewClient(cfg *config.Configuration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.Grok.BaseUrl, "/"),
		apiKey:  cfg.Grok.ApiKey,
		model:   cfg.Grok.Model,
		timeout: time.Duration(cfg.Grok.TimeoutSec) * time.Second,
		retries: cfg.Grok.Retries,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends prompt to the model and returns the raw text of the first
// choice. The call is bounded by the configured timeout per attempt and
// retried on 5xx/timeout per the request wrapper's policy.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a marketing analytics assistant. Always reply with a single JSON object and nothing else."},
			{Role: "user", Content: prompt},
		},
	}

	var resp chatResponse
	err := request.Do(ctx, "POST", c.baseURL+"/chat/completions", payload, &resp, request.Options{
		Timeout: c.timeout,
		Retries: c.retries,
		Headers: map[string]string{"Authorization": "Bearer " + c.apiKey},
	})
	if err != nil {
		return "", fmt.Errorf("llm call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrMalformedReply
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteJSON sends prompt to the model and decodes its JSON-formatted reply
// into out. Models occasionally wrap the object in a markdown fence; the
// fence is stripped before decoding.
func (c *Client) CompleteJSON(ctx context.Context, prompt string, out interface{}) error {
	content, err := c.Complete(ctx, prompt)
	if err != nil {
		return err
	}

	content = stripFence(content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err,
			"reply": truncate(content, 200),
		}).Warn("Model reply was not valid JSON")
		return ErrMalformedReply
	}
	return nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
