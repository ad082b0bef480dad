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
	"hash/fnv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/elevionhq/elevion/internal/cache"
	"github.com/elevionhq/elevion/internal/search"
	"github.com/elevionhq/elevion/model"
)

// SEOAnalysis is the scored review of a page or text. The fallback carries a
// neutral score of 72 and a note.
type SEOAnalysis struct {
	Score           int      `json:"score"`
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
	Note            string   `json:"note,omitempty"`
}

// BlogDraft is an AI-generated article draft.
type BlogDraft struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tags  string `json:"tags"`
	Note  string `json:"note,omitempty"`
}

// UXAnalysis lists suggested interface improvements.
type UXAnalysis struct {
	Suggestions []string `json:"suggestions"`
	Note        string   `json:"note,omitempty"`
}

// EngagementSummary is the numeric rollup of site engagement, always computed
// from stored rows.
type EngagementSummary struct {
	TotalPageViews int64   `json:"totalPageViews"`
	TotalVisitors  int64   `json:"totalVisitors"`
	AvgBounceRate  float64 `json:"avgBounceRate"`
	Days           int     `json:"days"`
}

// AnalyzeSEO scores content for search optimization. Identical content within
// the cache TTL returns the cached result without another model call.
func (e *Elevion) AnalyzeSEO(ctx context.Context, content string) (*SEOAnalysis, bool, error) {
	cacheKey := fmt.Sprintf("content:seo-analysis:%d", hashContent(content))

	var analysis SEOAnalysis
	if err := e.cache.Get(ctx, cacheKey, &analysis); err == nil && analysis.Score > 0 {
		return &analysis, false, nil
	}

	prompt := fmt.Sprintf(`You are an SEO auditor for small-business websites.
Audit the following content and reply with JSON only:
{"score": <0-100>, "strengths": ["..."], "recommendations": ["..."]}.
Content: %q`, content)

	if err := e.llm.CompleteJSON(ctx, prompt, &analysis); err != nil || analysis.Score <= 0 {
		logrus.WithField("feature", "seo-analysis").Warnf("seo analysis degraded: %v", err)
		return fallbackSEOAnalysis(), true, nil
	}

	_ = e.cache.Set(ctx, cacheKey, analysis, cache.TTLMedium)
	return &analysis, false, nil
}

// GenerateBlogDraft produces an article draft for a topic. The fallback is a
// usable outline template.
func (e *Elevion) GenerateBlogDraft(ctx context.Context, topic, keywords string) (*BlogDraft, bool, error) {
	cacheKey := fmt.Sprintf("content:blog-draft:%d", hashContent(topic+"|"+keywords))

	var draft BlogDraft
	if err := e.cache.Get(ctx, cacheKey, &draft); err == nil && draft.Title != "" {
		return &draft, false, nil
	}

	prompt := fmt.Sprintf(`You write marketing blog posts for small businesses.
Topic: %q. Keywords: %q.
Reply with JSON only: {"title":"...","body":"...","tags":"comma,separated"}.`, topic, keywords)

	if err := e.llm.CompleteJSON(ctx, prompt, &draft); err != nil || draft.Title == "" {
		logrus.WithField("feature", "blog-draft").Warnf("blog generation degraded: %v", err)
		return fallbackBlogDraft(topic, keywords), true, nil
	}

	_ = e.cache.Set(ctx, cacheKey, draft, cache.TTLLong)
	return &draft, false, nil
}

// AnalyzeUIImprovements suggests interface improvements for a described page.
func (e *Elevion) AnalyzeUIImprovements(ctx context.Context, description string) (*UXAnalysis, bool, error) {
	cacheKey := fmt.Sprintf("content:ux-analysis:%d", hashContent(description))

	var analysis UXAnalysis
	if err := e.cache.Get(ctx, cacheKey, &analysis); err == nil && len(analysis.Suggestions) > 0 {
		return &analysis, false, nil
	}

	prompt := fmt.Sprintf(`You review web interfaces for usability.
Page description: %q.
Reply with JSON only: {"suggestions":["..."]} with 3-5 concrete improvements.`, description)

	if err := e.llm.CompleteJSON(ctx, prompt, &analysis); err != nil || len(analysis.Suggestions) == 0 {
		logrus.WithField("feature", "ux-analysis").Warnf("ux analysis degraded: %v", err)
		return fallbackUXAnalysis(), true, nil
	}

	_ = e.cache.Set(ctx, cacheKey, analysis, cache.TTLMedium)
	return &analysis, false, nil
}

// CreateBlogPost persists a post and indexes it once published.
func (e *Elevion) CreateBlogPost(ctx context.Context, post model.BlogPost) (model.BlogPost, error) {
	post.BlogID = model.GenerateUUIDWithSuffix("blog")
	created, err := e.datasource.CreateBlogPost(ctx, post)
	if err != nil {
		return model.BlogPost{}, err
	}
	if created.Published {
		e.indexBlogPost(ctx, &created)
	}
	return created, nil
}

// GetBlogPost returns one blog post.
func (e *Elevion) GetBlogPost(ctx context.Context, id string) (*model.BlogPost, error) {
	return e.datasource.GetBlogPost(ctx, id)
}

// ListBlogPosts lists posts, optionally only published ones.
func (e *Elevion) ListBlogPosts(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error) {
	return e.datasource.GetAllBlogPosts(ctx, publishedOnly)
}

// UpdateBlogPost saves edits and re-indexes published posts.
func (e *Elevion) UpdateBlogPost(ctx context.Context, post *model.BlogPost) error {
	if err := e.datasource.UpdateBlogPost(ctx, post); err != nil {
		return err
	}
	if post.Published {
		e.indexBlogPost(ctx, post)
	}
	return nil
}

// RecordEngagement appends a daily engagement rollup.
func (e *Elevion) RecordEngagement(ctx context.Context, metric model.EngagementMetric) (model.EngagementMetric, error) {
	metric.MetricID = model.GenerateUUIDWithSuffix("met")
	return e.datasource.CreateEngagementMetric(ctx, metric)
}

// GetEngagementSummary aggregates a user's engagement rows over the trailing
// window. Pure arithmetic over stored rows.
func (e *Elevion) GetEngagementSummary(ctx context.Context, userID string, days int) (*EngagementSummary, error) {
	since := time.Now().AddDate(0, 0, -days)
	metrics, err := e.datasource.GetEngagementMetrics(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	summary := &EngagementSummary{Days: days}
	var bounceSum float64
	for _, m := range metrics {
		summary.TotalPageViews += m.PageViews
		summary.TotalVisitors += m.Visitors
		bounceSum += m.BounceRate
	}
	if len(metrics) > 0 {
		summary.AvgBounceRate = bounceSum / float64(len(metrics))
	}
	return summary, nil
}

func (e *Elevion) indexBlogPost(ctx context.Context, post *model.BlogPost) {
	doc := map[string]interface{}{
		"blog_id":    post.BlogID,
		"user_id":    post.UserID,
		"title":      post.Title,
		"body":       post.Body,
		"tags":       post.Tags,
		"published":  post.Published,
		"created_at": post.CreatedAt,
	}
	if err := e.queue.EnqueueIndexData(ctx, post.BlogID, search.CollectionBlogPosts, doc); err != nil {
		logrus.Warnf("failed to queue index data for %s: %v", post.BlogID, err)
	}
}

func hashContent(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

func fallbackSEOAnalysis() *SEOAnalysis {
	return &SEOAnalysis{
		Score: 72,
		Strengths: []string{
			"Content is present and readable",
		},
		Recommendations: []string{
			"Add descriptive title and meta description",
			"Use headings to structure the page",
			"Link to related pages on your site",
		},
		Note: "AI analysis unavailable, showing baseline audit",
	}
}

func fallbackBlogDraft(topic, keywords string) *BlogDraft {
	return &BlogDraft{
		Title: fmt.Sprintf("Notes on %s", topic),
		Body: fmt.Sprintf("## Introduction\n\nWhy %s matters for your business.\n\n"+
			"## Key points\n\n- Point one\n- Point two\n- Point three\n\n"+
			"## Conclusion\n\nNext steps for your customers.", topic),
		Tags: keywords,
		Note: "AI generation unavailable, showing outline template",
	}
}

func fallbackUXAnalysis() *UXAnalysis {
	return &UXAnalysis{
		Suggestions: []string{
			"Make the primary action the most prominent element on the page",
			"Reduce the number of form fields to the minimum required",
			"Ensure text contrast meets accessibility guidelines",
		},
		Note: "AI analysis unavailable, showing standard guidance",
	}
}
