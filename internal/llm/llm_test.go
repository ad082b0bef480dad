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
	"errors"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevionhq/elevion/config"
)

func testClient() *Client {
	return NewClient(&config.Configuration{
		Grok: config.GrokConfig{
			BaseUrl:    "https://api.x.ai/v1",
			ApiKey:     "test-key",
			Model:      "grok-2-1212",
			TimeoutSec: 5,
		},
	})
}

func registerChatReply(content string) {
	httpmock.RegisterResponder("POST", "https://api.x.ai/v1/chat/completions",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": content}},
			},
		}))
}

func TestCompleteJSON(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	registerChatReply(`{"score": 85, "summary": "solid"}`)

	var out struct {
		Score   int    `json:"score"`
		Summary string `json:"summary"`
	}
	err := testClient().CompleteJSON(context.Background(), "analyze this", &out)
	require.NoError(t, err)
	assert.Equal(t, 85, out.Score)
	assert.Equal(t, "solid", out.Summary)
}

func TestCompleteJSONStripsMarkdownFence(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	registerChatReply("```json\n{\"score\": 60}\n```")

	var out struct {
		Score int `json:"score"`
	}
	require.NoError(t, testClient().CompleteJSON(context.Background(), "analyze", &out))
	assert.Equal(t, 60, out.Score)
}

func TestCompleteJSONMalformedReply(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	registerChatReply("Sure! Here are my thoughts...")

	var out map[string]interface{}
	err := testClient().CompleteJSON(context.Background(), "analyze", &out)
	assert.True(t, errors.Is(err, ErrMalformedReply))
}

func TestCompleteUpstreamError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://api.x.ai/v1/chat/completions",
		httpmock.NewStringResponder(500, `{"error":"overloaded"}`))

	_, err := testClient().Complete(context.Background(), "analyze")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedReply))
}

func TestCompleteNotConfigured(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	c := NewClient(&config.Configuration{Grok: config.GrokConfig{BaseUrl: "https://api.x.ai/v1"}})
	_, err := c.Complete(context.Background(), "analyze")
	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.Equal(t, 0, httpmock.GetTotalCallCount(), "no HTTP call should be made without a key")
}
