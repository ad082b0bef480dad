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
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevionhq/elevion/model"
)

func TestSearchUnknownCollectionRejected(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")

	_, err := e.Search(context.Background(), "users", "anything")
	require.Error(t, err)
}

func TestSearchFallsBackToLocalRanking(t *testing.T) {
	// the test client points typesense at a closed port, so every search
	// degrades to the database-backed ranking
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	_, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_1", Name: "Garden design", Category: "design",
		Price: decimal.RequireFromString("40.00"), Currency: "USD",
	})
	require.NoError(t, err)
	_, err = e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_1", Name: "Dog walking", Category: "services",
		Price: decimal.RequireFromString("15.00"), Currency: "USD",
	})
	require.NoError(t, err)

	response, err := e.Search(ctx, "marketplace_items", "garden")
	require.NoError(t, err)
	assert.True(t, response.Fallback)
	require.NotEmpty(t, response.Hits)
	assert.Equal(t, "Garden design", response.Hits[0].Document["name"])
}

func TestSearchFallbackToleratesTypos(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	_, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_1", Name: "Plumbing repair", Category: "services",
		Price: decimal.RequireFromString("80.00"), Currency: "USD",
	})
	require.NoError(t, err)

	response, err := e.Search(ctx, "marketplace_items", "plumbing")
	require.NoError(t, err)
	require.NotEmpty(t, response.Hits)

	response, err = e.Search(ctx, "marketplace_items", "plumming")
	require.NoError(t, err)
	require.NotEmpty(t, response.Hits)
	assert.Equal(t, "Plumbing repair", response.Hits[0].Document["name"])
}

func TestSearchBlogPostsOnlyPublished(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	_, err := e.CreateBlogPost(ctx, model.BlogPost{
		UserID: "usr_1", Title: "Hidden draft about gardening", Tags: "garden",
	})
	require.NoError(t, err)

	published, err := e.CreateBlogPost(ctx, model.BlogPost{
		UserID: "usr_1", Title: "Gardening tips for spring", Tags: "garden", Published: true,
	})
	require.NoError(t, err)

	response, err := e.Search(ctx, "blog_posts", "gardening")
	require.NoError(t, err)
	require.Len(t, response.Hits, 1)
	assert.Equal(t, published.BlogID, response.Hits[0].Document["blog_id"])
}
