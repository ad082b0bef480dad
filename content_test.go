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
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevionhq/elevion/model"
)

func TestAnalyzeSEOFallbackScore(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")

	analysis, fallback, err := e.AnalyzeSEO(context.Background(), "<h1>My shop</h1>")
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.Equal(t, 72, analysis.Score)
	assert.NotEmpty(t, analysis.Note)
	assert.NotEmpty(t, analysis.Recommendations)
}

func TestAnalyzeSEOCachesIdenticalContent(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	e, _, _, _ := newTestElevion(t, "test-key")
	ctx := context.Background()

	registerLLMReply(t, `{"score":88,"strengths":["clear titles"],"recommendations":["add alt text"]}`)

	first, fallback, err := e.AnalyzeSEO(ctx, "<h1>My shop</h1><p>Welcome</p>")
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, 88, first.Score)

	second, fallback, err := e.AnalyzeSEO(ctx, "<h1>My shop</h1><p>Welcome</p>")
	require.NoError(t, err)
	assert.False(t, fallback)

	// identical payload, upstream invoked exactly once
	assert.Equal(t, first, second)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGenerateBlogDraftFallbackTemplate(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")

	draft, fallback, err := e.GenerateBlogDraft(context.Background(), "local SEO", "seo,local")
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.Contains(t, draft.Title, "local SEO")
	assert.Equal(t, "seo,local", draft.Tags)
	assert.NotEmpty(t, draft.Note)
}

func TestAnalyzeUIImprovementsFallback(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")

	analysis, fallback, err := e.AnalyzeUIImprovements(context.Background(), "checkout page with five forms")
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.NotEmpty(t, analysis.Suggestions)
	assert.NotEmpty(t, analysis.Note)
}

func TestBlogPostPublishQueuesIndexing(t *testing.T) {
	e, queue, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	post, err := e.CreateBlogPost(ctx, model.BlogPost{
		UserID: "usr_1", Title: "Draft post", Body: "...", Tags: "news",
	})
	require.NoError(t, err)
	assert.Empty(t, queue.indexed)

	post.Published = true
	require.NoError(t, e.UpdateBlogPost(ctx, &post))
	assert.Equal(t, []string{post.BlogID}, queue.indexed)
}

func TestEngagementSummaryAggregatesRows(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	for i, views := range []int64{100, 200} {
		_, err := e.RecordEngagement(ctx, model.EngagementMetric{
			UserID:     "usr_1",
			Day:        time.Now().AddDate(0, 0, -i),
			PageViews:  views,
			Visitors:   views / 2,
			BounceRate: 0.4,
		})
		require.NoError(t, err)
	}

	summary, err := e.GetEngagementSummary(ctx, "usr_1", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(300), summary.TotalPageViews)
	assert.Equal(t, int64(150), summary.TotalVisitors)
	assert.InDelta(t, 0.4, summary.AvgBounceRate, 0.001)
}
