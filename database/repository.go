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

package database

import (
	"context"
	"time"

	"github.com/elevionhq/elevion/model"
)

type userRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserStripeCustomerID(ctx context.Context, id, stripeCustomerID string) error
}

type marketplaceRepository interface {
	CreateMarketplaceItem(ctx context.Context, item model.MarketplaceItem) (model.MarketplaceItem, error)
	GetMarketplaceItem(ctx context.Context, id string) (*model.MarketplaceItem, error)
	GetAllMarketplaceItems(ctx context.Context) ([]model.MarketplaceItem, error)
	UpdateMarketplaceItem(ctx context.Context, item *model.MarketplaceItem) error
	DisableMarketplaceItem(ctx context.Context, id string) error
	CreateOrder(ctx context.Context, order model.Order) (model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	GetOrdersForUser(ctx context.Context, userID string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	GetSalesRows(ctx context.Context) ([]SalesRow, error)
}

type subscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub model.Subscription) (model.Subscription, error)
	GetSubscription(ctx context.Context, id string) (*model.Subscription, error)
	GetActiveSubscriptionForUser(ctx context.Context, userID string) (*model.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, id, status string) error
}

type advertisementRepository interface {
	CreateAdvertisement(ctx context.Context, ad model.Advertisement) (model.Advertisement, error)
	GetAdvertisement(ctx context.Context, id string) (*model.Advertisement, error)
	GetAllAdvertisements(ctx context.Context) ([]model.Advertisement, error)
	UpdateAdvertisement(ctx context.Context, ad *model.Advertisement) error
	DisableAdvertisement(ctx context.Context, id string) error
	IncrementAdClicks(ctx context.Context, id string) error
	IncrementAdImpressions(ctx context.Context, id string) error
}

type socialRepository interface {
	CreateScheduledPost(ctx context.Context, post model.ScheduledPost) (model.ScheduledPost, error)
	GetScheduledPost(ctx context.Context, id string) (*model.ScheduledPost, error)
	GetScheduledPostsForUser(ctx context.Context, userID string) ([]model.ScheduledPost, error)
	UpdateScheduledPost(ctx context.Context, post *model.ScheduledPost) error
	MarkMissedPosts(ctx context.Context, cutoff time.Time) (int64, error)
}

type contentRepository interface {
	CreateBlogPost(ctx context.Context, post model.BlogPost) (model.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (*model.BlogPost, error)
	GetAllBlogPosts(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error)
	UpdateBlogPost(ctx context.Context, post *model.BlogPost) error
	CreateEngagementMetric(ctx context.Context, metric model.EngagementMetric) (model.EngagementMetric, error)
	GetEngagementMetrics(ctx context.Context, userID string, since time.Time) ([]model.EngagementMetric, error)
}

// IDataSource is the storage façade consumed by the domain services.
type IDataSource interface {
	userRepository
	marketplaceRepository
	subscriptionRepository
	advertisementRepository
	socialRepository
	contentRepository
	Migrate() error
}
