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

	"gorm.io/gorm"

	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/model"
)

// CreateSubscription persists the local mirror of a Stripe subscription.
func (d *Datasource) CreateSubscription(ctx context.Context, sub model.Subscription) (model.Subscription, error) {
	if err := d.Conn.WithContext(ctx).Create(&sub).Error; err != nil {
		return model.Subscription{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create subscription", err)
	}
	return sub, nil
}

// GetSubscription retrieves a subscription by ID.
func (d *Datasource) GetSubscription(ctx context.Context, id string) (*model.Subscription, error) {
	var sub model.Subscription
	err := d.Conn.WithContext(ctx).Where("subscription_id = ?", id).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound,
				fmt.Sprintf("Subscription with ID '%s' not found", id), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve subscription", err)
	}
	return &sub, nil
}

// GetActiveSubscriptionForUser returns the user's active subscription, or a
// NOT_FOUND error when the user has none.
func (d *Datasource) GetActiveSubscriptionForUser(ctx context.Context, userID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := d.Conn.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.SubscriptionStatusActive).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound,
				fmt.Sprintf("No active subscription for user '%s'", userID), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve subscription", err)
	}
	return &sub, nil
}

// UpdateSubscriptionStatus moves a subscription between active and cancelled.
func (d *Datasource) UpdateSubscriptionStatus(ctx context.Context, id, status string) error {
	result := d.Conn.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscription_id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update subscription", result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("Subscription with ID '%s' not found", id), nil)
	}
	return nil
}
