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
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/subscription"

	"github.com/elevionhq/elevion/config"
)

// ErrNotConfigured is returned when no Stripe secret key is set. Unlike the
// AI features, payments never degrade to fallback data; the error is
// surfaced to the caller.
var ErrNotConfigured = errors.New("payments: stripe secret key not configured")

// PaymentIntent is the subset of the Stripe object the API surface needs.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// StripeProvider is a thin wrapper over the Stripe SDK. Billing logic lives
// in Stripe; this only creates the objects the marketplace needs.
type StripeProvider struct {
	configured bool
}

func NewStripeProvider(cfg *config.Configuration) *StripeProvider {
	if cfg.Stripe.SecretKey == "" {
		return &StripeProvider{}
	}
	stripe.Key = cfg.Stripe.SecretKey
	return &StripeProvider{configured: true}
}

// Configured reports whether a Stripe secret key was supplied.
func (s *StripeProvider) Configured() bool {
	return s.configured
}

// CreatePaymentIntent creates a PaymentIntent for amount in the given
// currency and returns its id and client secret. Amount is in major units
// (dollars) and converted to the minor unit Stripe expects.
func (s *StripeProvider) CreatePaymentIntent(amount decimal.Decimal, currency string, metadata map[string]string) (*PaymentIntent, error) {
	if !s.configured {
		return nil, ErrNotConfigured
	}

	minorUnits := amount.Mul(decimal.NewFromInt(100)).IntPart()
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent failed: %w", err)
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// EnsureCustomer returns the Stripe customer id for the given email, creating
// the customer when existingID is empty.
func (s *StripeProvider) EnsureCustomer(existingID, email string) (string, error) {
	if !s.configured {
		return "", ErrNotConfigured
	}
	if existingID != "" {
		return existingID, nil
	}

	cus, err := customer.New(&stripe.CustomerParams{Email: stripe.String(email)})
	if err != nil {
		return "", fmt.Errorf("stripe customer creation failed: %w", err)
	}
	return cus.ID, nil
}

// CreateSubscription subscribes the customer to the given price and returns
// the Stripe subscription id.
func (s *StripeProvider) CreateSubscription(customerID, priceID string) (string, error) {
	if !s.configured {
		return "", ErrNotConfigured
	}

	sub, err := subscription.New(&stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("stripe subscription creation failed: %w", err)
	}
	return sub.ID, nil
}

// CancelSubscription cancels the Stripe subscription immediately.
func (s *StripeProvider) CancelSubscription(stripeSubscriptionID string) error {
	if !s.configured {
		return ErrNotConfigured
	}

	_, err := subscription.Cancel(stripeSubscriptionID, nil)
	if err != nil {
		return fmt.Errorf("stripe subscription cancel failed: %w", err)
	}
	return nil
}
