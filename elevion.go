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
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/elevionhq/elevion/config"
	"github.com/elevionhq/elevion/database"
	"github.com/elevionhq/elevion/internal/cache"
	"github.com/elevionhq/elevion/internal/llm"
	redlock "github.com/elevionhq/elevion/internal/lock"
	"github.com/elevionhq/elevion/internal/payments"
	redis_db "github.com/elevionhq/elevion/internal/redis-db"
	"github.com/elevionhq/elevion/internal/search"
	"github.com/elevionhq/elevion/internal/social"
	"github.com/elevionhq/elevion/model"
)

// PaymentProvider abstracts the billing backend so services and tests do not
// depend on live Stripe calls.
type PaymentProvider interface {
	Configured() bool
	CreatePaymentIntent(amount decimal.Decimal, currency string, metadata map[string]string) (*payments.PaymentIntent, error)
	EnsureCustomer(existingID, email string) (string, error)
	CreateSubscription(customerID, priceID string) (string, error)
	CancelSubscription(stripeSubscriptionID string) error
}

// TaskQueue abstracts asynq so services can be tested without redis.
type TaskQueue interface {
	EnqueueSocialPost(ctx context.Context, post *model.ScheduledPost) error
	EnqueueIndexData(ctx context.Context, id, collection string, data map[string]interface{}) error
}

// SocialPublisher abstracts the Twitter/X client for the dispatch worker.
type SocialPublisher interface {
	Configured() bool
	PostTweet(ctx context.Context, content string) (string, error)
}

// Elevion is the main application struct wiring storage, cache, queue, search
// and the upstream AI, billing and social clients behind the API surface.
type Elevion struct {
	datasource database.IDataSource
	cache      cache.Cache
	queue      TaskQueue
	search     *search.TypesenseClient
	llm        *llm.Client
	payments   PaymentProvider
	social     SocialPublisher
	redis      redis.UniversalClient
}

// NewElevion initializes the application with the provided datasource. The
// remaining collaborators are built from configuration.
func NewElevion(db database.IDataSource) (*Elevion, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}

	redisClient, err := redis_db.NewRedisClient([]string{fmt.Sprintf("redis://%s", configuration.Redis.Dns)}, configuration.Redis.SkipTLSVerify)
	if err != nil {
		return nil, err
	}

	appCache, err := cache.NewCache()
	if err != nil {
		return nil, err
	}

	newElevion := &Elevion{
		datasource: db,
		cache:      appCache,
		queue:      NewQueue(configuration),
		search:     search.NewTypesenseClient(configuration.TypeSenseKey, []string{configuration.TypeSense.Dns}),
		llm:        llm.NewClient(configuration),
		payments:   payments.NewStripeProvider(configuration),
		social:     social.NewTwitterClient(configuration),
		redis:      redisClient.Client(),
	}
	return newElevion, nil
}

// NewElevionWithDependencies wires an Elevion from explicit collaborators.
// Production code goes through NewElevion; this form exists for composition
// roots and tests that substitute billing, queueing or social backends.
func NewElevionWithDependencies(db database.IDataSource, appCache cache.Cache, queue TaskQueue, searchClient *search.TypesenseClient, llmClient *llm.Client, paymentProvider PaymentProvider, socialPublisher SocialPublisher) *Elevion {
	return &Elevion{
		datasource: db,
		cache:      appCache,
		queue:      queue,
		search:     searchClient,
		llm:        llmClient,
		payments:   paymentProvider,
		social:     socialPublisher,
	}
}

// SearchClient exposes the search service to the API layer.
func (e *Elevion) SearchClient() *search.TypesenseClient {
	return e.search
}

// tryLock takes a best-effort redis lock around expensive upstream work on a
// shared key. A positive wait blocks up to that long for a contended lock;
// zero fails fast. Duplicate work is bounded, not forbidden: when redis is
// absent or the lock stays contended the caller proceeds without it.
func (e *Elevion) tryLock(ctx context.Context, key string, ttl, wait time.Duration) *redlock.Locker {
	if e.redis == nil {
		return nil
	}
	locker := redlock.NewLocker(e.redis, key, model.GenerateUUIDWithSuffix("lock"))
	if wait > 0 {
		if err := locker.WaitLock(ctx, ttl, wait); err != nil {
			return nil
		}
		return locker
	}
	if err := locker.Lock(ctx, ttl); err != nil {
		return nil
	}
	return locker
}
