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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/model"
)

func TestCreateSubscriptionLinksStripeCustomer(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	user, err := e.CreateUser(ctx, model.User{Email: "owner@example.com", BusinessName: "Acme"})
	require.NoError(t, err)

	sub, err := e.CreateSubscription(ctx, user.UserID, "pro", "price_123")
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "sub_stripe_test", sub.StripeSubscriptionID)

	got, err := e.GetUser(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "cus_test", got.StripeCustomerID)
}

func TestCreateSubscriptionRejectsSecondActive(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	user, err := e.CreateUser(ctx, model.User{Email: "owner2@example.com"})
	require.NoError(t, err)

	_, err = e.CreateSubscription(ctx, user.UserID, "pro", "price_123")
	require.NoError(t, err)

	_, err = e.CreateSubscription(ctx, user.UserID, "pro", "price_123")
	require.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrConflict, apiErr.Code)
}

func TestCancelSubscriptionIsIdempotent(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	user, err := e.CreateUser(ctx, model.User{Email: "owner3@example.com"})
	require.NoError(t, err)
	sub, err := e.CreateSubscription(ctx, user.UserID, "pro", "price_123")
	require.NoError(t, err)

	cancelled, err := e.CancelSubscription(ctx, sub.SubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionStatusCancelled, cancelled.Status)

	again, err := e.CancelSubscription(ctx, sub.SubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionStatusCancelled, again.Status)
}

func TestCancelSubscriptionStripeFailureSurfaces(t *testing.T) {
	e, _, pay, _ := newTestElevion(t, "")
	ctx := context.Background()

	user, err := e.CreateUser(ctx, model.User{Email: "owner4@example.com"})
	require.NoError(t, err)
	sub, err := e.CreateSubscription(ctx, user.UserID, "pro", "price_123")
	require.NoError(t, err)

	pay.fail = true
	_, err = e.CancelSubscription(ctx, sub.SubscriptionID)
	require.Error(t, err)

	// local mirror stays active when the upstream cancel failed
	got, err := e.GetSubscription(ctx, sub.SubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionStatusActive, got.Status)
}
