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

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// MarketplaceItem is a priced listing owned by a user. Lifecycle is
// create -> (update)* -> soft-disable; rows are never hard-deleted.
type MarketplaceItem struct {
	ItemID      string          `json:"item_id" gorm:"primaryKey;type:varchar(64)"`
	UserID      string          `json:"user_id" gorm:"type:varchar(64);index"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"type:varchar(100);index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Currency    string          `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	Available   bool            `json:"available" gorm:"default:true"`
	Disabled    bool            `json:"disabled" gorm:"default:false"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (MarketplaceItem) TableName() string { return "marketplace_items" }

// Order is a purchase ledger row. TotalPrice is computed server side from the
// item price at purchase time; it never trusts a client-supplied amount.
type Order struct {
	OrderID         string          `json:"order_id" gorm:"primaryKey;type:varchar(64)"`
	ItemID          string          `json:"item_id" gorm:"type:varchar(64);index"`
	UserID          string          `json:"user_id" gorm:"type:varchar(64);index"`
	Quantity        int             `json:"quantity" gorm:"not null"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2)"`
	Currency        string          `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	Status          string          `json:"status" gorm:"type:varchar(20);index;default:'pending'"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty" gorm:"type:varchar(64)"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }
