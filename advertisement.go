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

	"github.com/sirupsen/logrus"

	"github.com/elevionhq/elevion/internal/cache"
	"github.com/elevionhq/elevion/model"
)

// AdCopy is AI-generated ad text for a product.
type AdCopy struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
	Cta      string `json:"cta"`
	Note     string `json:"note,omitempty"`
}

// AdPerformance is the numeric performance of one ad plus an AI sentiment
// read. CTR is derived from the stored counters, never stored itself.
type AdPerformance struct {
	AdID        string  `json:"adId"`
	Title       string  `json:"title"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
	Sentiment   string  `json:"sentiment"`
	Note        string  `json:"note,omitempty"`
}

// CreateAdvertisement persists a new ad placement.
func (e *Elevion) CreateAdvertisement(ctx context.Context, ad model.Advertisement) (model.Advertisement, error) {
	ad.AdID = model.GenerateUUIDWithSuffix("ad")
	ad.Active = true
	return e.datasource.CreateAdvertisement(ctx, ad)
}

// GetAdvertisement returns one ad.
func (e *Elevion) GetAdvertisement(ctx context.Context, id string) (*model.Advertisement, error) {
	return e.datasource.GetAdvertisement(ctx, id)
}

// ListAdvertisements returns all non-disabled ads.
func (e *Elevion) ListAdvertisements(ctx context.Context) ([]model.Advertisement, error) {
	return e.datasource.GetAllAdvertisements(ctx)
}

// UpdateAdvertisement saves ad edits.
func (e *Elevion) UpdateAdvertisement(ctx context.Context, ad *model.Advertisement) error {
	return e.datasource.UpdateAdvertisement(ctx, ad)
}

// DisableAdvertisement soft-deletes an ad.
func (e *Elevion) DisableAdvertisement(ctx context.Context, id string) error {
	return e.datasource.DisableAdvertisement(ctx, id)
}

// TrackAdClick bumps the click counter.
func (e *Elevion) TrackAdClick(ctx context.Context, id string) error {
	return e.datasource.IncrementAdClicks(ctx, id)
}

// TrackAdImpression bumps the impression counter.
func (e *Elevion) TrackAdImpression(ctx context.Context, id string) error {
	return e.datasource.IncrementAdImpressions(ctx, id)
}

// GenerateAdCopy asks the model for ad text for a product, degrading to a
// fill-in template.
func (e *Elevion) GenerateAdCopy(ctx context.Context, product, audience string) (*AdCopy, bool, error) {
	cacheKey := fmt.Sprintf("advertisement:copy:%d", hashContent(product+"|"+audience))

	var copyResult AdCopy
	if err := e.cache.Get(ctx, cacheKey, &copyResult); err == nil && copyResult.Headline != "" {
		return &copyResult, false, nil
	}

	prompt := fmt.Sprintf(`You write short display ads for small businesses.
Product: %q. Audience: %q.
Reply with JSON only: {"headline":"...","body":"...","cta":"..."}.`, product, audience)

	if err := e.llm.CompleteJSON(ctx, prompt, &copyResult); err != nil || copyResult.Headline == "" {
		logrus.WithField("feature", "ad-copy").Warnf("ad copy degraded: %v", err)
		return fallbackAdCopy(product), true, nil
	}

	_ = e.cache.Set(ctx, cacheKey, copyResult, cache.TTLMedium)
	return &copyResult, false, nil
}

// GetAdPerformance derives CTR from the stored counters and adds an AI
// sentiment read on the numbers. The numeric portion never depends on the
// model.
func (e *Elevion) GetAdPerformance(ctx context.Context, id string) (*AdPerformance, bool, error) {
	ad, err := e.datasource.GetAdvertisement(ctx, id)
	if err != nil {
		return nil, false, err
	}

	performance := &AdPerformance{
		AdID:        ad.AdID,
		Title:       ad.Title,
		Impressions: ad.Impressions,
		Clicks:      ad.Clicks,
	}
	if ad.Impressions > 0 {
		performance.CTR = float64(ad.Clicks) / float64(ad.Impressions) * 100
	}

	prompt := fmt.Sprintf(`You assess ad performance for small businesses.
Ad %q: %d impressions, %d clicks, CTR %.2f%%.
Reply with JSON only: {"sentiment":"one short sentence on how this ad is doing"}.`,
		ad.Title, ad.Impressions, ad.Clicks, performance.CTR)

	var reply struct {
		Sentiment string `json:"sentiment"`
	}
	fallback := false
	if err := e.llm.CompleteJSON(ctx, prompt, &reply); err != nil || reply.Sentiment == "" {
		logrus.WithField("feature", "ad-performance").Warnf("sentiment degraded: %v", err)
		performance.Sentiment = describeCTR(performance.CTR, ad.Impressions)
		performance.Note = "AI summary unavailable, showing standard read"
		fallback = true
	} else {
		performance.Sentiment = reply.Sentiment
	}

	return performance, fallback, nil
}

func describeCTR(ctr float64, impressions int64) string {
	switch {
	case impressions == 0:
		return "No impressions recorded yet."
	case ctr >= 2:
		return "Click-through rate is above typical display benchmarks."
	case ctr >= 0.5:
		return "Click-through rate is within the typical range."
	default:
		return "Click-through rate is below typical benchmarks; consider new creative."
	}
}

func fallbackAdCopy(product string) *AdCopy {
	return &AdCopy{
		Headline: fmt.Sprintf("Discover %s", product),
		Body:     fmt.Sprintf("Quality %s from a local business you can trust.", product),
		Cta:      "Shop now",
		Note:     "AI generation unavailable, showing template copy",
	}
}
