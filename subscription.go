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

	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/model"
)

// CreateSubscription starts a Stripe subscription for the user on the given
// price and mirrors it locally. A user can hold at most one active
// subscription.
func (e *Elevion) CreateSubscription(ctx context.Context, userID, plan, stripePriceID string) (*model.Subscription, error) {
	user, err := e.datasource.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing, err := e.datasource.GetActiveSubscriptionForUser(ctx, userID); err == nil && existing != nil {
		return nil, apierror.NewAPIError(apierror.ErrConflict,
			fmt.Sprintf("User '%s' already has an active subscription", userID), nil)
	}

	customerID, err := e.payments.EnsureCustomer(user.StripeCustomerID, user.Email)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrUpstream, "Failed to resolve billing customer", err)
	}
	if customerID != user.StripeCustomerID {
		if err := e.datasource.UpdateUserStripeCustomerID(ctx, userID, customerID); err != nil {
			return nil, err
		}
	}

	stripeSubID, err := e.payments.CreateSubscription(customerID, stripePriceID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrUpstream, "Subscription creation failed", err)
	}

	sub, err := e.datasource.CreateSubscription(ctx, model.Subscription{
		SubscriptionID:       model.GenerateUUIDWithSuffix("sub"),
		UserID:               userID,
		Plan:                 plan,
		StripeSubscriptionID: stripeSubID,
		Status:               model.SubscriptionStatusActive,
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CancelSubscription cancels in Stripe first, then mirrors the state locally.
// Cancelling an already cancelled subscription is a no-op.
func (e *Elevion) CancelSubscription(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	sub, err := e.datasource.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	if sub.Status == model.SubscriptionStatusCancelled {
		return sub, nil
	}

	if sub.StripeSubscriptionID != "" {
		if err := e.payments.CancelSubscription(sub.StripeSubscriptionID); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrUpstream, "Subscription cancellation failed", err)
		}
	}

	if err := e.datasource.UpdateSubscriptionStatus(ctx, subscriptionID, model.SubscriptionStatusCancelled); err != nil {
		return nil, err
	}
	sub.Status = model.SubscriptionStatusCancelled
	return sub, nil
}

// GetSubscription returns one subscription.
func (e *Elevion) GetSubscription(ctx context.Context, id string) (*model.Subscription, error) {
	return e.datasource.GetSubscription(ctx, id)
}
