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
	"context"
	"errors"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevionhq/elevion/config"
)

func configuredClient() *TwitterClient {
	return NewTwitterClient(&config.Configuration{
		Twitter: config.TwitterConfig{
			ApiKey:       "key",
			ApiSecret:    "secret",
			AccessToken:  "token",
			AccessSecret: "token-secret",
		},
	})
}

func TestPostTweet(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://api.twitter.com/2/tweets",
		httpmock.NewJsonResponderOrPanic(201, map[string]interface{}{
			"data": map[string]interface{}{"id": "1790000000000000001", "text": "hello"},
		}))

	client := configuredClient()
	require.True(t, client.Configured())

	id, err := client.PostTweet(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "1790000000000000001", id)
}

func TestPostTweetUpstreamError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://api.twitter.com/2/tweets",
		httpmock.NewStringResponder(403, `{"detail":"duplicate content"}`))

	_, err := configuredClient().PostTweet(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestPostTweetNotConfigured(t *testing.T) {
	client := NewTwitterClient(&config.Configuration{})
	assert.False(t, client.Configured())

	_, err := client.PostTweet(context.Background(), "hello")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}
