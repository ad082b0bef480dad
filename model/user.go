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

// User is an account owner. Authentication is handled upstream; this row only
// carries identity and billing linkage.
type User struct {
	UserID           string    `json:"user_id" gorm:"primaryKey;type:varchar(64)"`
	Email            string    `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	BusinessName     string    `json:"business_name" gorm:"type:varchar(255)"`
	StripeCustomerID string    `json:"stripe_customer_id,omitempty" gorm:"type:varchar(64)"`
	Disabled         bool      `json:"disabled" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
