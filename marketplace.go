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
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/elevionhq/elevion/database"
	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/internal/cache"
	"github.com/elevionhq/elevion/internal/payments"
	"github.com/elevionhq/elevion/internal/search"
	"github.com/elevionhq/elevion/model"
)

// PurchaseResult is what a successful purchase returns to the client: the
// ledgered order plus the Stripe client secret the frontend confirms with.
type PurchaseResult struct {
	Order        model.Order `json:"order"`
	ClientSecret string      `json:"clientSecret"`
}

// ProductSales is one aggregated row of the sales analytics summary.
type ProductSales struct {
	ItemID     string          `json:"itemId"`
	Name       string          `json:"name"`
	UnitsSold  int             `json:"unitsSold"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage float64         `json:"percentage"`
}

// CategorySales aggregates revenue per category.
type CategorySales struct {
	Category   string          `json:"category"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage float64         `json:"percentage"`
}

// SalesInsights is the AI-generated portion of the analytics summary. Note is
// populated only on the static fallback.
type SalesInsights struct {
	Summary         string   `json:"summary"`
	Opportunities   []string `json:"opportunities"`
	Recommendations []string `json:"recommendations"`
	Note            string   `json:"note,omitempty"`
}

// SalesAnalytics combines the numeric aggregation (always computed from order
// rows) with AI insights (fallback-capable).
type SalesAnalytics struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalOrders     int             `json:"totalOrders"`
	TopProducts     []ProductSales  `json:"topProducts"`
	SalesByCategory []CategorySales `json:"salesByCategory"`
	AIInsights      SalesInsights   `json:"aiInsights"`
}

// ItemRecommendation is one AI-suggested listing improvement or cross-sell.
type ItemRecommendation struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// RecommendationResult carries AI recommendations for a seller's catalogue.
type RecommendationResult struct {
	Recommendations []ItemRecommendation `json:"recommendations"`
	Note            string               `json:"note,omitempty"`
}

// PriceSuggestion is the AI-estimated price band for a listing. The fallback
// suggests the current price unchanged.
type PriceSuggestion struct {
	ItemID         string          `json:"itemId"`
	CurrentPrice   decimal.Decimal `json:"currentPrice"`
	SuggestedPrice decimal.Decimal `json:"suggestedPrice"`
	Rationale      string          `json:"rationale"`
	Note           string          `json:"note,omitempty"`
}

// CreateMarketplaceItem persists a listing and queues it for search indexing.
func (e *Elevion) CreateMarketplaceItem(ctx context.Context, item model.MarketplaceItem) (model.MarketplaceItem, error) {
	item.ItemID = model.GenerateUUIDWithSuffix("itm")
	item.Available = true

	created, err := e.datasource.CreateMarketplaceItem(ctx, item)
	if err != nil {
		return model.MarketplaceItem{}, err
	}

	e.indexMarketplaceItem(ctx, &created)
	return created, nil
}

// GetMarketplaceItem returns a single listing.
func (e *Elevion) GetMarketplaceItem(ctx context.Context, id string) (*model.MarketplaceItem, error) {
	return e.datasource.GetMarketplaceItem(ctx, id)
}

// ListMarketplaceItems returns all non-disabled listings.
func (e *Elevion) ListMarketplaceItems(ctx context.Context) ([]model.MarketplaceItem, error) {
	return e.datasource.GetAllMarketplaceItems(ctx)
}

// UpdateMarketplaceItem saves listing edits and re-indexes the document.
func (e *Elevion) UpdateMarketplaceItem(ctx context.Context, item *model.MarketplaceItem) error {
	if err := e.datasource.UpdateMarketplaceItem(ctx, item); err != nil {
		return err
	}
	e.indexMarketplaceItem(ctx, item)
	return nil
}

// DisableMarketplaceItem soft-deletes a listing.
func (e *Elevion) DisableMarketplaceItem(ctx context.Context, id string) error {
	return e.datasource.DisableMarketplaceItem(ctx, id)
}

// PurchaseItem computes the order total from the stored item price, creates a
// Stripe PaymentIntent for it and ledgers a pending order. The client-supplied
// amount is never trusted.
func (e *Elevion) PurchaseItem(ctx context.Context, userID, itemID string, quantity int) (*PurchaseResult, error) {
	item, err := e.datasource.GetMarketplaceItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Disabled || !item.Available {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest,
			fmt.Sprintf("Item '%s' is not available for purchase", itemID), nil)
	}

	totalPrice := item.Price.Mul(decimal.NewFromInt(int64(quantity)))

	intent, err := e.payments.CreatePaymentIntent(totalPrice, item.Currency, map[string]string{
		"item_id":  item.ItemID,
		"user_id":  userID,
		"quantity": fmt.Sprintf("%d", quantity),
	})
	if err != nil {
		if err == payments.ErrNotConfigured {
			return nil, apierror.NewAPIError(apierror.ErrUpstream, "Payments are not configured", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrUpstream, "Payment intent creation failed", err)
	}

	order, err := e.datasource.CreateOrder(ctx, model.Order{
		OrderID:         model.GenerateUUIDWithSuffix("ord"),
		ItemID:          item.ItemID,
		UserID:          userID,
		Quantity:        quantity,
		TotalPrice:      totalPrice,
		Currency:        item.Currency,
		Status:          model.OrderStatusPending,
		PaymentIntentID: intent.ID,
	})
	if err != nil {
		return nil, err
	}

	return &PurchaseResult{Order: order, ClientSecret: intent.ClientSecret}, nil
}

// GetOrder returns one order.
func (e *Elevion) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return e.datasource.GetOrder(ctx, id)
}

// ListOrders returns a buyer's orders, newest first.
func (e *Elevion) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	return e.datasource.GetOrdersForUser(ctx, userID)
}

// ConfirmOrder marks a pending order paid after the frontend has confirmed
// the payment intent with the client secret. Confirming an already paid order
// is a no-op; a cancelled order is rejected.
func (e *Elevion) ConfirmOrder(ctx context.Context, id string) (*model.Order, error) {
	order, err := e.datasource.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case model.OrderStatusPaid:
		return order, nil
	case model.OrderStatusCancelled:
		return nil, apierror.NewAPIError(apierror.ErrBadRequest, "Cancelled orders cannot be confirmed", nil)
	}

	if err := e.datasource.UpdateOrderStatus(ctx, id, model.OrderStatusPaid); err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusPaid
	return order, nil
}

// CancelOrder cancels a pending order. Cancelling an already cancelled order
// is a no-op; a paid order is rejected.
func (e *Elevion) CancelOrder(ctx context.Context, id string) (*model.Order, error) {
	order, err := e.datasource.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case model.OrderStatusCancelled:
		return order, nil
	case model.OrderStatusPaid:
		return nil, apierror.NewAPIError(apierror.ErrBadRequest, "Paid orders cannot be cancelled", nil)
	}

	if err := e.datasource.UpdateOrderStatus(ctx, id, model.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusCancelled
	return order, nil
}

// GetSalesAnalytics aggregates order rows into revenue breakdowns and asks the
// model for insights on top. The numeric portion never depends on the model;
// when the model is down or replies garbage the insights degrade to a static
// note-bearing fallback.
func (e *Elevion) GetSalesAnalytics(ctx context.Context) (*SalesAnalytics, bool, error) {
	rows, err := e.datasource.GetSalesRows(ctx)
	if err != nil {
		return nil, false, err
	}

	analytics := aggregateSales(rows)

	fallback := false
	cacheKey := "marketplace:sales-insights"

	var insights SalesInsights
	if err := e.cache.Get(ctx, cacheKey, &insights); err != nil || insights.Summary == "" {
		// Bound concurrent misses hitting the model for the same key.
		if locker := e.tryLock(ctx, cacheKey+":lock", 30*time.Second, 0); locker != nil {
			defer func() {
				if err := locker.Unlock(ctx); err != nil {
					logrus.Debugf("unlock failed: %v", err)
				}
			}()
		}

		prompt := salesInsightsPrompt(analytics)
		if err := e.llm.CompleteJSON(ctx, prompt, &insights); err != nil {
			logrus.WithField("feature", "sales-analytics").Warnf("insights degraded: %v", err)
			insights = fallbackSalesInsights()
			fallback = true
		} else {
			_ = e.cache.Set(ctx, cacheKey, insights, cache.TTLShort)
		}
	}

	analytics.AIInsights = insights
	return analytics, fallback, nil
}

// GetItemRecommendations asks the model for catalogue recommendations for a
// seller, caching successful replies.
func (e *Elevion) GetItemRecommendations(ctx context.Context, userID string) (*RecommendationResult, bool, error) {
	items, err := e.datasource.GetAllMarketplaceItems(ctx)
	if err != nil {
		return nil, false, err
	}

	cacheKey := fmt.Sprintf("marketplace:recommendations:%s", userID)

	var result RecommendationResult
	if err := e.cache.Get(ctx, cacheKey, &result); err == nil && len(result.Recommendations) > 0 {
		return &result, false, nil
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, fmt.Sprintf("%s (%s, %s %s)", item.Name, item.Category, item.Price.StringFixed(2), item.Currency))
	}

	prompt := fmt.Sprintf(`You advise small-business sellers on an online marketplace.
Current catalogue: %s.
Reply with JSON only: {"recommendations":[{"title":"...","reason":"..."}]} with 3 entries.`, strings.Join(names, "; "))

	if err := e.llm.CompleteJSON(ctx, prompt, &result); err != nil {
		logrus.WithField("feature", "recommendations").Warnf("recommendations degraded: %v", err)
		return fallbackRecommendations(), true, nil
	}

	_ = e.cache.Set(ctx, cacheKey, result, cache.TTLMedium)
	return &result, false, nil
}

// GetPriceSuggestion asks the model for a price suggestion for one listing.
// The fallback keeps the current price.
func (e *Elevion) GetPriceSuggestion(ctx context.Context, itemID string) (*PriceSuggestion, bool, error) {
	item, err := e.datasource.GetMarketplaceItem(ctx, itemID)
	if err != nil {
		return nil, false, err
	}

	cacheKey := fmt.Sprintf("marketplace:price-suggestion:%s", itemID)

	var suggestion PriceSuggestion
	if err := e.cache.Get(ctx, cacheKey, &suggestion); err == nil && suggestion.ItemID != "" {
		return &suggestion, false, nil
	}

	prompt := fmt.Sprintf(`You price products for small businesses.
Item: %q, category %q, description %q, current price %s %s.
Reply with JSON only: {"suggestedPrice": <number>, "rationale": "..."}.`,
		item.Name, item.Category, item.Description, item.Price.StringFixed(2), item.Currency)

	var reply struct {
		SuggestedPrice float64 `json:"suggestedPrice"`
		Rationale      string  `json:"rationale"`
	}
	if err := e.llm.CompleteJSON(ctx, prompt, &reply); err != nil {
		logrus.WithField("feature", "price-suggestion").Warnf("price suggestion degraded: %v", err)
		return &PriceSuggestion{
			ItemID:         item.ItemID,
			CurrentPrice:   item.Price,
			SuggestedPrice: item.Price,
			Rationale:      "Keeping the current price until live market analysis is available.",
			Note:           "AI analysis unavailable, showing baseline suggestion",
		}, true, nil
	}

	suggestion = PriceSuggestion{
		ItemID:         item.ItemID,
		CurrentPrice:   item.Price,
		SuggestedPrice: decimal.NewFromFloat(reply.SuggestedPrice),
		Rationale:      reply.Rationale,
	}
	_ = e.cache.Set(ctx, cacheKey, suggestion, cache.TTLMedium)
	return &suggestion, false, nil
}

func (e *Elevion) indexMarketplaceItem(ctx context.Context, item *model.MarketplaceItem) {
	price, _ := item.Price.Float64()
	doc := map[string]interface{}{
		"item_id":     item.ItemID,
		"user_id":     item.UserID,
		"name":        item.Name,
		"description": item.Description,
		"category":    item.Category,
		"price":       price,
		"currency":    item.Currency,
		"available":   item.Available,
		"created_at":  item.CreatedAt,
	}
	if err := e.queue.EnqueueIndexData(ctx, item.ItemID, search.CollectionMarketplaceItems, doc); err != nil {
		logrus.Warnf("failed to queue index data for %s: %v", item.ItemID, err)
	}
}

// aggregateSales folds order rows into totals, per-product and per-category
// breakdowns. Percentages are derived here, never stored. Cancelled orders are
// excluded.
func aggregateSales(rows []database.SalesRow) *SalesAnalytics {
	analytics := &SalesAnalytics{
		TotalRevenue:    decimal.Zero,
		TopProducts:     []ProductSales{},
		SalesByCategory: []CategorySales{},
	}

	products := make(map[string]*ProductSales)
	categories := make(map[string]*CategorySales)

	for _, row := range rows {
		if row.Status == model.OrderStatusCancelled {
			continue
		}
		analytics.TotalOrders++
		analytics.TotalRevenue = analytics.TotalRevenue.Add(row.TotalPrice)

		p, ok := products[row.ItemID]
		if !ok {
			p = &ProductSales{ItemID: row.ItemID, Name: row.ItemName, Revenue: decimal.Zero}
			products[row.ItemID] = p
		}
		p.UnitsSold += row.Quantity
		p.Revenue = p.Revenue.Add(row.TotalPrice)

		c, ok := categories[row.Category]
		if !ok {
			c = &CategorySales{Category: row.Category, Revenue: decimal.Zero}
			categories[row.Category] = c
		}
		c.Revenue = c.Revenue.Add(row.TotalPrice)
	}

	for _, p := range products {
		if analytics.TotalRevenue.IsPositive() {
			pct, _ := p.Revenue.Div(analytics.TotalRevenue).Mul(decimal.NewFromInt(100)).Round(2).Float64()
			p.Percentage = pct
		}
		analytics.TopProducts = append(analytics.TopProducts, *p)
	}
	for _, c := range categories {
		if analytics.TotalRevenue.IsPositive() {
			pct, _ := c.Revenue.Div(analytics.TotalRevenue).Mul(decimal.NewFromInt(100)).Round(2).Float64()
			c.Percentage = pct
		}
		analytics.SalesByCategory = append(analytics.SalesByCategory, *c)
	}

	sort.Slice(analytics.TopProducts, func(i, j int) bool {
		return analytics.TopProducts[i].Revenue.GreaterThan(analytics.TopProducts[j].Revenue)
	})
	sort.Slice(analytics.SalesByCategory, func(i, j int) bool {
		return analytics.SalesByCategory[i].Revenue.GreaterThan(analytics.SalesByCategory[j].Revenue)
	})

	if len(analytics.TopProducts) > 5 {
		analytics.TopProducts = analytics.TopProducts[:5]
	}
	return analytics
}

func salesInsightsPrompt(a *SalesAnalytics) string {
	top := make([]string, 0, len(a.TopProducts))
	for _, p := range a.TopProducts {
		top = append(top, fmt.Sprintf("%s: %s revenue, %d units", p.Name, p.Revenue.StringFixed(2), p.UnitsSold))
	}
	return fmt.Sprintf(`You analyze sales for a small-business marketplace.
Total revenue %s across %d orders. Top products: %s.
Reply with JSON only: {"summary":"...","opportunities":["..."],"recommendations":["..."]}.`,
		a.TotalRevenue.StringFixed(2), a.TotalOrders, strings.Join(top, "; "))
}

func fallbackSalesInsights() SalesInsights {
	return SalesInsights{
		Summary: "Sales figures are computed from your order history; trend analysis is temporarily unavailable.",
		Opportunities: []string{
			"Review your top products and keep them in stock",
			"Consider bundling slow movers with bestsellers",
		},
		Recommendations: []string{
			"Check back shortly for AI-generated insights",
		},
		Note: "AI insights unavailable, showing standard guidance",
	}
}

func fallbackRecommendations() *RecommendationResult {
	return &RecommendationResult{
		Recommendations: []ItemRecommendation{
			{Title: "Complete your listings", Reason: "Items with full descriptions and categories convert better."},
			{Title: "Add seasonal offers", Reason: "Time-limited discounts lift repeat purchases."},
			{Title: "Feature customer reviews", Reason: "Social proof increases buyer trust."},
		},
		Note: "AI recommendations unavailable, showing standard suggestions",
	}
}
