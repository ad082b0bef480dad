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
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/model"
)

// SalesRow is one order joined with its item, the raw material for the sales
// analytics summary.
type SalesRow struct {
	OrderID    string          `json:"order_id"`
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name"`
	Category   string          `json:"category"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
}

// CreateMarketplaceItem persists a new listing.
func (d *Datasource) CreateMarketplaceItem(ctx context.Context, item model.MarketplaceItem) (model.MarketplaceItem, error) {
	if err := d.Conn.WithContext(ctx).Create(&item).Error; err != nil {
		return model.MarketplaceItem{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create marketplace item", err)
	}
	return item, nil
}

// GetMarketplaceItem retrieves a listing by ID. Disabled listings are still
// returned so owners can re-enable them.
func (d *Datasource) GetMarketplaceItem(ctx context.Context, id string) (*model.MarketplaceItem, error) {
	var item model.MarketplaceItem
	err := d.Conn.WithContext(ctx).Where("item_id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound,
				fmt.Sprintf("Item with ID '%s' not found", id), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve item", err)
	}
	return &item, nil
}

// GetAllMarketplaceItems lists every non-disabled listing, newest first.
func (d *Datasource) GetAllMarketplaceItems(ctx context.Context) ([]model.MarketplaceItem, error) {
	var items []model.MarketplaceItem
	err := d.Conn.WithContext(ctx).
		Where("disabled = ?", false).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to list items", err)
	}
	return items, nil
}

// UpdateMarketplaceItem saves the full mutable state of a listing.
func (d *Datasource) UpdateMarketplaceItem(ctx context.Context, item *model.MarketplaceItem) error {
	result := d.Conn.WithContext(ctx).Model(&model.MarketplaceItem{}).
		Where("item_id = ?", item.ItemID).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"category":    item.Category,
			"price":       item.Price,
			"currency":    item.Currency,
			"available":   item.Available,
		})
	if result.Error != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update item", result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("Item with ID '%s' not found", item.ItemID), nil)
	}
	return nil
}

// DisableMarketplaceItem soft-deletes a listing. The row is kept for order
// history joins.
func (d *Datasource) DisableMarketplaceItem(ctx context.Context, id string) error {
	result := d.Conn.WithContext(ctx).Model(&model.MarketplaceItem{}).
		Where("item_id = ?", id).
		Updates(map[string]interface{}{"disabled": true, "available": false})
	if result.Error != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to disable item", result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("Item with ID '%s' not found", id), nil)
	}
	return nil
}

// CreateOrder persists a purchase row.
func (d *Datasource) CreateOrder(ctx context.Context, order model.Order) (model.Order, error) {
	if err := d.Conn.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create order", err)
	}
	return order, nil
}

// GetOrder retrieves an order by ID.
func (d *Datasource) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := d.Conn.WithContext(ctx).Where("order_id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound,
				fmt.Sprintf("Order with ID '%s' not found", id), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve order", err)
	}
	return &order, nil
}

// GetOrdersForUser lists a buyer's orders, newest first.
func (d *Datasource) GetOrdersForUser(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	err := d.Conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to list orders", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves an order through pending -> paid | cancelled.
func (d *Datasource) UpdateOrderStatus(ctx context.Context, id, status string) error {
	result := d.Conn.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("Order with ID '%s' not found", id), nil)
	}
	return nil
}

// GetSalesRows joins orders with their items for analytics aggregation.
func (d *Datasource) GetSalesRows(ctx context.Context) ([]SalesRow, error) {
	var rows []SalesRow
	err := d.Conn.WithContext(ctx).
		Table("orders").
		Select(`orders.order_id, orders.item_id, marketplace_items.name AS item_name,
			marketplace_items.category, orders.quantity, orders.total_price,
			orders.currency, orders.status`).
		Joins("JOIN marketplace_items ON marketplace_items.item_id = orders.item_id").
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to load sales rows", err)
	}
	return rows, nil
}
