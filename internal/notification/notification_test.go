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

package notification

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/elevionhq/elevion/config"
)

func TestSlackNotification(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	config.MockConfig(&config.Configuration{
		Notification: config.Notification{
			Slack: config.SlackWebhook{WebhookUrl: "https://hooks.slack.com/services/T000/B000/XXX"},
		},
	})

	httpmock.RegisterResponder("POST", "https://hooks.slack.com/services/T000/B000/XXX",
		httpmock.NewStringResponder(200, `{"ok":true}`))

	SlackNotification(errors.New("database unreachable"))
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSlackNotificationWithoutConfig(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	// An atomic.Value only accepts one concrete type, so the store is
	// replaced wholesale to model a process that never loaded config.
	config.ConfigStore = atomic.Value{}
	SlackNotification(errors.New("boom"))
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}
