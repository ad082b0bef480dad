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
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateItem is the request body for creating a marketplace listing.
type CreateItem struct {
	UserID      string  `json:"userId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
}

func (r *CreateItem) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Price, validation.Required, validation.Min(0.01)),
		validation.Field(&r.Currency, validation.Required, validation.Length(3, 3)),
	)
}

// UpdateItem is the request body for editing a listing.
type UpdateItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Available   *bool   `json:"available"`
}

func (r *UpdateItem) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Price, validation.Required, validation.Min(0.01)),
		validation.Field(&r.Currency, validation.Required, validation.Length(3, 3)),
	)
}

// Purchase is the request body for buying an item. The amount is never taken
// from the client; only the item and quantity are.
type Purchase struct {
	UserID   string `json:"userId"`
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func (r *Purchase) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.ItemID, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// PriceSuggestionRequest asks for an AI price suggestion for one listing.
type PriceSuggestionRequest struct {
	ItemID string `json:"itemId"`
}

func (r *PriceSuggestionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ItemID, validation.Required),
	)
}

// CreateAd is the request body for creating an advertisement.
type CreateAd struct {
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Copy      string `json:"copy"`
	TargetURL string `json:"targetUrl"`
}

func (r *CreateAd) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.TargetURL, validation.Required, is.URL),
	)
}

// UpdateAd is the request body for editing an advertisement.
type UpdateAd struct {
	Title     string `json:"title"`
	Copy      string `json:"copy"`
	TargetURL string `json:"targetUrl"`
	Active    *bool  `json:"active"`
}

func (r *UpdateAd) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.TargetURL, validation.Required, is.URL),
	)
}

// GenerateAdCopy asks for AI ad text.
type GenerateAdCopy struct {
	Product  string `json:"product"`
	Audience string `json:"audience"`
}

func (r *GenerateAdCopy) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Product, validation.Required),
	)
}

// SchedulePost is the request body for scheduling a social post.
type SchedulePost struct {
	UserID        string    `json:"userId"`
	Content       string    `json:"content"`
	ScheduledTime time.Time `json:"scheduledTime"`
}

func (r *SchedulePost) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Content, validation.Required, validation.Length(1, 280)),
		validation.Field(&r.ScheduledTime, validation.Required, validation.By(futureTime(r.ScheduledTime))),
	)
}

func futureTime(t time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		if !t.After(time.Now()) {
			return errors.New("must be in the future")
		}
		return nil
	}
}

// DraftPost is the request body for saving a post draft.
type DraftPost struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

func (r *DraftPost) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Content, validation.Required, validation.Length(1, 280)),
	)
}

// ReschedulePost moves a post to a new delivery time.
type ReschedulePost struct {
	ScheduledTime time.Time `json:"scheduledTime"`
}

func (r *ReschedulePost) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ScheduledTime, validation.Required, validation.By(futureTime(r.ScheduledTime))),
	)
}

// SEOAnalysis is the request body for a content audit.
type SEOAnalysis struct {
	Content string `json:"content"`
}

func (r *SEOAnalysis) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Required),
	)
}

// GenerateBlog asks for an AI blog draft.
type GenerateBlog struct {
	Topic    string `json:"topic"`
	Keywords string `json:"keywords"`
}

func (r *GenerateBlog) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Topic, validation.Required),
	)
}

// CreateBlogPost is the request body for saving a blog post.
type CreateBlogPost struct {
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Tags      string `json:"tags"`
	Published bool   `json:"published"`
}

func (r *CreateBlogPost) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
	)
}

// UpdateBlogPost is the request body for editing a blog post.
type UpdateBlogPost struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Tags      string `json:"tags"`
	Published bool   `json:"published"`
}

func (r *UpdateBlogPost) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
	)
}

// AnalyzeUI asks for AI interface suggestions.
type AnalyzeUI struct {
	Description string `json:"description"`
}

func (r *AnalyzeUI) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Description, validation.Required),
	)
}

// CreateSubscription is the request body for starting a subscription.
type CreateSubscription struct {
	UserID  string `json:"userId"`
	Plan    string `json:"plan"`
	PriceID string `json:"priceId"`
}

func (r *CreateSubscription) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Plan, validation.Required),
		validation.Field(&r.PriceID, validation.Required),
	)
}

// CreateUser is the request body for registering an account owner.
type CreateUser struct {
	Email        string `json:"email"`
	BusinessName string `json:"businessName"`
}

func (r *CreateUser) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// SearchRequest is the request body for a collection search.
type SearchRequest struct {
	Q string `json:"q"`
}

func (r *SearchRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Q, validation.Required),
	)
}

// RecordEngagement appends a daily engagement rollup.
type RecordEngagement struct {
	UserID     string    `json:"userId"`
	Day        time.Time `json:"day"`
	PageViews  int64     `json:"pageViews"`
	Visitors   int64     `json:"visitors"`
	BounceRate float64   `json:"bounceRate"`
}

func (r *RecordEngagement) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Day, validation.Required),
		validation.Field(&r.PageViews, validation.Min(0)),
		validation.Field(&r.Visitors, validation.Min(0)),
	)
}
