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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithoutInit(t *testing.T) {
	ConfigStore.Store(0) // anything that is not *Configuration
	_, err := Fetch()
	assert.Error(t, err)
}

func TestMockConfig(t *testing.T) {
	MockConfig(&Configuration{ProjectName: "Test Elevion"})
	cnf, err := Fetch()
	require.NoError(t, err)
	assert.Equal(t, "Test Elevion", cnf.ProjectName)
}

func TestValidateAndAddDefaults(t *testing.T) {
	cnf := &Configuration{
		DataSource: DataSourceConfig{Dns: "postgres://localhost:5432/elevion"},
		Redis:      RedisConfig{Dns: "localhost:6379"},
	}
	err := cnf.validateAndAddDefaults()
	require.NoError(t, err)

	assert.Equal(t, "Elevion Server", cnf.ProjectName)
	assert.Equal(t, DEFAULT_PORT, cnf.Server.Port)
	assert.Equal(t, DEFAULT_GROK_BASE_URL, cnf.Grok.BaseUrl)
	assert.Equal(t, DEFAULT_GROK_MODEL, cnf.Grok.Model)
	assert.Equal(t, 30, cnf.Grok.TimeoutSec)
	assert.Equal(t, "new:social_dispatch", cnf.Queue.SocialDispatchQueue)
	assert.Equal(t, "new:index", cnf.Queue.IndexQueue)
	assert.NotNil(t, cnf.RateLimit.CleanupIntervalSec)
}

func TestValidateRequiredFields(t *testing.T) {
	cnf := &Configuration{Redis: RedisConfig{Dns: "localhost:6379"}}
	assert.Error(t, cnf.validateAndAddDefaults())

	cnf = &Configuration{DataSource: DataSourceConfig{Dns: "postgres://localhost/elevion"}}
	assert.Error(t, cnf.validateAndAddDefaults())
}

func TestMissingTwitterCredentials(t *testing.T) {
	cnf := &Configuration{}
	assert.Len(t, cnf.MissingTwitterCredentials(), 4)

	cnf.Twitter = TwitterConfig{
		ApiKey:       "k",
		ApiSecret:    "s",
		AccessToken:  "t",
		AccessSecret: "ts",
	}
	assert.Empty(t, cnf.MissingTwitterCredentials())

	cnf.Twitter.AccessSecret = ""
	assert.Equal(t, []string{"TWITTER_ACCESS_SECRET"}, cnf.MissingTwitterCredentials())
}
