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

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	model2 "github.com/elevionhq/elevion/api/model"
	"github.com/elevionhq/elevion/model"
)

func (a Api) CreateMarketplaceItem(c *gin.Context) {
	var req model2.CreateItem
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	item, err := a.elevion.CreateMarketplaceItem(c.Request.Context(), model.MarketplaceItem{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       decimal.NewFromFloat(req.Price),
		Currency:    req.Currency,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, item)
}

func (a Api) GetMarketplaceItem(c *gin.Context) {
	item, err := a.elevion.GetMarketplaceItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, item)
}

func (a Api) ListMarketplaceItems(c *gin.Context) {
	items, err := a.elevion.ListMarketplaceItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, items)
}

func (a Api) UpdateMarketplaceItem(c *gin.Context) {
	var req model2.UpdateItem
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	item := &model.MarketplaceItem{
		ItemID:      c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       decimal.NewFromFloat(req.Price),
		Currency:    req.Currency,
		Available:   req.Available == nil || *req.Available,
	}
	if err := a.elevion.UpdateMarketplaceItem(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, item)
}

func (a Api) DisableMarketplaceItem(c *gin.Context) {
	if err := a.elevion.DisableMarketplaceItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"disabled": true})
}

func (a Api) PurchaseItem(c *gin.Context) {
	var req model2.Purchase
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := a.elevion.PurchaseItem(c.Request.Context(), req.UserID, req.ItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, result)
}

func (a Api) GetOrder(c *gin.Context) {
	order, err := a.elevion.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, order)
}

func (a Api) ListOrders(c *gin.Context) {
	orders, err := a.elevion.ListOrders(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, orders)
}

func (a Api) ConfirmOrder(c *gin.Context) {
	order, err := a.elevion.ConfirmOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, order)
}

func (a Api) CancelOrder(c *gin.Context) {
	order, err := a.elevion.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, order)
}

func (a Api) GetSalesAnalytics(c *gin.Context) {
	analytics, fallback, err := a.elevion.GetSalesAnalytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondFallback(c, analytics, fallback)
}

func (a Api) GetItemRecommendations(c *gin.Context) {
	result, fallback, err := a.elevion.GetItemRecommendations(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondFallback(c, result, fallback)
}

func (a Api) GetPriceSuggestion(c *gin.Context) {
	var req model2.PriceSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	suggestion, fallback, err := a.elevion.GetPriceSuggestion(c.Request.Context(), req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondFallback(c, suggestion, fallback)
}
