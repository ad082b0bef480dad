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

// CreateUser persists a new user row. The caller is expected to have set
// UserID via model.GenerateUUIDWithSuffix.
func (d *Datasource) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if err := d.Conn.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.User{}, apierror.NewAPIError(apierror.ErrConflict,
				fmt.Sprintf("User with email '%s' already exists", user.Email), err)
		}
		return model.User{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create user", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (d *Datasource) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := d.Conn.WithContext(ctx).Where("user_id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound,
				fmt.Sprintf("User with ID '%s' not found", id), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve user", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (d *Datasource) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := d.Conn.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound,
				fmt.Sprintf("User with email '%s' not found", email), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve user", err)
	}
	return &user, nil
}

// UpdateUserStripeCustomerID stores the Stripe customer linkage after the
// first billing interaction.
func (d *Datasource) UpdateUserStripeCustomerID(ctx context.Context, id, stripeCustomerID string) error {
	result := d.Conn.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", id).
		Update("stripe_customer_id", stripeCustomerID)
	if result.Error != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("User with ID '%s' not found", id), nil)
	}
	return nil
}
