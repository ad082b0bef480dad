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

package elevion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jarcoal/httpmock"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/elevionhq/elevion/config"
	"github.com/elevionhq/elevion/database"
	"github.com/elevionhq/elevion/internal/cache"
	"github.com/elevionhq/elevion/internal/llm"
	"github.com/elevionhq/elevion/internal/payments"
	"github.com/elevionhq/elevion/internal/search"
	"github.com/elevionhq/elevion/internal/social"
	"github.com/elevionhq/elevion/model"
)

// The production clients must satisfy the collaborator interfaces the
// service hub is wired with.
var (
	_ PaymentProvider = (*payments.StripeProvider)(nil)
	_ SocialPublisher = (*social.TwitterClient)(nil)
	_ TaskQueue       = (*Queue)(nil)
)

type stubQueue struct {
	dispatches []string
	indexed    []string
}

func (s *stubQueue) EnqueueSocialPost(_ context.Context, post *model.ScheduledPost) error {
	s.dispatches = append(s.dispatches, post.PostID)
	return nil
}

func (s *stubQueue) EnqueueIndexData(_ context.Context, id, _ string, _ map[string]interface{}) error {
	s.indexed = append(s.indexed, id)
	return nil
}

type stubPayments struct {
	intents int
	fail    bool
}

func (s *stubPayments) Configured() bool { return true }

func (s *stubPayments) CreatePaymentIntent(amount decimal.Decimal, currency string, metadata map[string]string) (*payments.PaymentIntent, error) {
	if s.fail {
		return nil, errors.New("stripe unavailable")
	}
	s.intents++
	return &payments.PaymentIntent{ID: fmt.Sprintf("pi_test_%d", s.intents), ClientSecret: "pi_test_secret"}, nil
}

func (s *stubPayments) EnsureCustomer(existingID, email string) (string, error) {
	if existingID != "" {
		return existingID, nil
	}
	return "cus_test", nil
}

func (s *stubPayments) CreateSubscription(customerID, priceID string) (string, error) {
	if s.fail {
		return "", errors.New("stripe unavailable")
	}
	return "sub_stripe_test", nil
}

func (s *stubPayments) CancelSubscription(id string) error {
	if s.fail {
		return errors.New("stripe unavailable")
	}
	return nil
}

type stubSocial struct {
	posted []string
	err    error
}

func (s *stubSocial) Configured() bool { return true }

func (s *stubSocial) PostTweet(_ context.Context, content string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.posted = append(s.posted, content)
	return "1790000000000000000", nil
}

// newTestElevion wires an Elevion over in-memory sqlite and miniredis with
// stubbed billing, social and queue collaborators. The LLM client points at
// llm.test, so tests drive it with httpmock (or leave the key blank to force
// the not-configured path).
func newTestElevion(t *testing.T, llmKey string) (*Elevion, *stubQueue, *stubPayments, *stubSocial) {
	t.Helper()

	mr := miniredis.RunT(t)
	config.MockConfig(&config.Configuration{
		Redis: config.RedisConfig{Dns: mr.Addr()},
		Grok: config.GrokConfig{
			BaseUrl:    "https://llm.test/v1",
			ApiKey:     llmKey,
			Model:      "grok-2-1212",
			TimeoutSec: 5,
		},
	})

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	ds := &database.Datasource{Conn: conn}
	require.NoError(t, ds.Migrate())

	appCache, err := cache.NewCache()
	require.NoError(t, err)

	conf, err := config.Fetch()
	require.NoError(t, err)

	queue := &stubQueue{}
	pay := &stubPayments{}
	soc := &stubSocial{}

	e := &Elevion{
		datasource: ds,
		cache:      appCache,
		queue:      queue,
		// points at a closed port, so Search exercises the local fallback
		search:   search.NewTypesenseClient("test-key", []string{"http://127.0.0.1:1"}),
		llm:      llm.NewClient(conf),
		payments: pay,
		social:   soc,
		redis:    redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	return e, queue, pay, soc
}

// registerLLMReply registers a chat-completions responder whose message
// content is the given JSON string.
func registerLLMReply(t *testing.T, content string) {
	t.Helper()
	body := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
	responder, err := httpmock.NewJsonResponder(200, body)
	require.NoError(t, err)
	httpmock.RegisterResponder("POST", "https://llm.test/v1/chat/completions", responder)
}
