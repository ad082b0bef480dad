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

package payments

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/elevionhq/elevion/config"
)

func TestUnconfiguredProviderRejectsEverything(t *testing.T) {
	provider := NewStripeProvider(&config.Configuration{})
	assert.False(t, provider.Configured())

	_, err := provider.CreatePaymentIntent(decimal.NewFromInt(10), "USD", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = provider.EnsureCustomer("", "owner@example.com")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = provider.CreateSubscription("cus_123", "price_123")
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.ErrorIs(t, provider.CancelSubscription("sub_123"), ErrNotConfigured)
}

func TestConfiguredProviderReportsReady(t *testing.T) {
	provider := NewStripeProvider(&config.Configuration{
		Stripe: config.StripeConfig{SecretKey: "sk_test_123"},
	})
	assert.True(t, provider.Configured())
}

func TestEnsureCustomerKeepsExistingID(t *testing.T) {
	provider := NewStripeProvider(&config.Configuration{
		Stripe: config.StripeConfig{SecretKey: "sk_test_123"},
	})

	id, err := provider.EnsureCustomer("cus_existing", "owner@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "cus_existing", id)
}
