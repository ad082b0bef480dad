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

	"github.com/jarcoal/httpmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/model"
)

func TestPurchaseItemComputesTotalFromStoredPrice(t *testing.T) {
	e, _, pay, _ := newTestElevion(t, "")
	ctx := context.Background()

	item, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID:   "usr_seller",
		Name:     "Consultation hour",
		Category: "services",
		Price:    decimal.RequireFromString("10.00"),
		Currency: "USD",
	})
	require.NoError(t, err)

	result, err := e.PurchaseItem(ctx, "usr_buyer", item.ItemID, 2)
	require.NoError(t, err)

	assert.True(t, result.Order.TotalPrice.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, model.OrderStatusPending, result.Order.Status)
	assert.Equal(t, "pi_test_secret", result.ClientSecret)
	assert.NotEmpty(t, result.Order.PaymentIntentID)
	assert.Equal(t, 1, pay.intents)
}

func TestPurchaseDisabledItemRejected(t *testing.T) {
	e, _, pay, _ := newTestElevion(t, "")
	ctx := context.Background()

	item, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_seller", Name: "Old listing", Price: decimal.RequireFromString("5.00"), Currency: "USD",
	})
	require.NoError(t, err)
	require.NoError(t, e.DisableMarketplaceItem(ctx, item.ItemID))

	_, err = e.PurchaseItem(ctx, "usr_buyer", item.ItemID, 1)
	require.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrBadRequest, apiErr.Code)
	assert.Equal(t, 0, pay.intents)
}

func TestPurchasePaymentFailureSurfacesUpstreamError(t *testing.T) {
	e, _, pay, _ := newTestElevion(t, "")
	pay.fail = true
	ctx := context.Background()

	item, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_seller", Name: "Gift card", Price: decimal.RequireFromString("25.00"), Currency: "USD",
	})
	require.NoError(t, err)

	_, err = e.PurchaseItem(ctx, "usr_buyer", item.ItemID, 1)
	require.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrUpstream, apiErr.Code)

	// no order may be ledgered when the intent was never created
	orders, err := e.datasource.GetOrdersForUser(ctx, "usr_buyer")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSalesAnalyticsFallbackWhenModelDown(t *testing.T) {
	// blank key: every model call fails fast with ErrNotConfigured
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	item, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_seller", Name: "Logo design", Category: "design",
		Price: decimal.RequireFromString("10.00"), Currency: "USD",
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = e.PurchaseItem(ctx, "usr_buyer", item.ItemID, 1)
		require.NoError(t, err)
	}

	analytics, fallback, err := e.GetSalesAnalytics(ctx)
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.NotEmpty(t, analytics.AIInsights.Note)

	// numeric aggregation never depends on the model
	assert.Equal(t, 2, analytics.TotalOrders)
	assert.True(t, analytics.TotalRevenue.Equal(decimal.RequireFromString("20.00")))
	require.Len(t, analytics.TopProducts, 1)
	assert.Equal(t, "Logo design", analytics.TopProducts[0].Name)
	assert.InDelta(t, 100.0, analytics.TopProducts[0].Percentage, 0.01)
	require.Len(t, analytics.SalesByCategory, 1)
	assert.Equal(t, "design", analytics.SalesByCategory[0].Category)
}

func TestSalesAnalyticsUsesModelInsights(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	e, _, _, _ := newTestElevion(t, "test-key")
	ctx := context.Background()

	registerLLMReply(t, `{"summary":"Design services drive all revenue.","opportunities":["bundle offers"],"recommendations":["raise prices"]}`)

	analytics, fallback, err := e.GetSalesAnalytics(ctx)
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, "Design services drive all revenue.", analytics.AIInsights.Summary)
	assert.Empty(t, analytics.AIInsights.Note)
}

func TestPriceSuggestionFallbackKeepsCurrentPrice(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	item, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_seller", Name: "Site audit", Price: decimal.RequireFromString("49.00"), Currency: "USD",
	})
	require.NoError(t, err)

	suggestion, fallback, err := e.GetPriceSuggestion(ctx, item.ItemID)
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.True(t, suggestion.SuggestedPrice.Equal(item.Price))
	assert.NotEmpty(t, suggestion.Note)
}

func TestItemRecommendationsCachedWithinTTL(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	e, _, _, _ := newTestElevion(t, "test-key")
	ctx := context.Background()

	_, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_seller", Name: "Hosting plan", Price: decimal.RequireFromString("9.00"), Currency: "USD",
	})
	require.NoError(t, err)

	registerLLMReply(t, `{"recommendations":[{"title":"Add yearly plan","reason":"Better retention"}]}`)

	first, fallback, err := e.GetItemRecommendations(ctx, "usr_seller")
	require.NoError(t, err)
	assert.False(t, fallback)

	second, fallback, err := e.GetItemRecommendations(ctx, "usr_seller")
	require.NoError(t, err)
	assert.False(t, fallback)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestCreateItemQueuesIndexing(t *testing.T) {
	e, queue, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	item, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_seller", Name: "Sticker pack", Price: decimal.RequireFromString("3.00"), Currency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{item.ItemID}, queue.indexed)
}

func TestOrderConfirmationLifecycle(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	item, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_seller", Name: "Logo design", Category: "design",
		Price: decimal.RequireFromString("10.00"), Currency: "USD",
	})
	require.NoError(t, err)

	result, err := e.PurchaseItem(ctx, "usr_buyer", item.ItemID, 1)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, result.Order.Status)

	confirmed, err := e.ConfirmOrder(ctx, result.Order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, confirmed.Status)

	// confirming again is a no-op
	again, err := e.ConfirmOrder(ctx, result.Order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, again.Status)

	// a paid order cannot be cancelled
	_, err = e.CancelOrder(ctx, result.Order.OrderID)
	require.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrBadRequest, apiErr.Code)
}

func TestOrderCancellationLifecycle(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	item, err := e.CreateMarketplaceItem(ctx, model.MarketplaceItem{
		UserID: "usr_seller", Name: "Consultation hour", Category: "services",
		Price: decimal.RequireFromString("25.00"), Currency: "USD",
	})
	require.NoError(t, err)

	result, err := e.PurchaseItem(ctx, "usr_buyer", item.ItemID, 1)
	require.NoError(t, err)

	cancelled, err := e.CancelOrder(ctx, result.Order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	// cancelling again is a no-op
	again, err := e.CancelOrder(ctx, result.Order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, again.Status)

	// a cancelled order cannot be confirmed
	_, err = e.ConfirmOrder(ctx, result.Order.OrderID)
	require.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrBadRequest, apiErr.Code)
}

func TestConfirmMissingOrderNotFound(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")

	_, err := e.ConfirmOrder(context.Background(), "ord_missing")
	require.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}
