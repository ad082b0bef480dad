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

import "time"

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription links a user to a Stripe subscription. Billing state of record
// lives in Stripe; this row is the local mirror used for gating features.
type Subscription struct {
	SubscriptionID       string    `json:"subscription_id" gorm:"primaryKey;type:varchar(64)"`
	UserID               string    `json:"user_id" gorm:"type:varchar(64);index"`
	Plan                 string    `json:"plan" gorm:"type:varchar(50)"`
	StripeSubscriptionID string    `json:"stripe_subscription_id,omitempty" gorm:"type:varchar(64)"`
	Status               string    `json:"status" gorm:"type:varchar(20);index;default:'active'"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }
