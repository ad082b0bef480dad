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

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	model2 "github.com/elevionhq/elevion/api/model"
	"github.com/elevionhq/elevion/model"
)

func (a Api) AnalyzeSEO(c *gin.Context) {
	var req model2.SEOAnalysis
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	analysis, fallback, err := a.elevion.AnalyzeSEO(c.Request.Context(), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondFallback(c, analysis, fallback)
}

func (a Api) GenerateBlog(c *gin.Context) {
	var req model2.GenerateBlog
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	draft, fallback, err := a.elevion.GenerateBlogDraft(c.Request.Context(), req.Topic, req.Keywords)
	if err != nil {
		respondError(c, err)
		return
	}
	respondFallback(c, draft, fallback)
}

func (a Api) AnalyzeUIImprovements(c *gin.Context) {
	var req model2.AnalyzeUI
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	analysis, fallback, err := a.elevion.AnalyzeUIImprovements(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	respondFallback(c, analysis, fallback)
}

func (a Api) CreateBlogPost(c *gin.Context) {
	var req model2.CreateBlogPost
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	post, err := a.elevion.CreateBlogPost(c.Request.Context(), model.BlogPost{
		UserID:    req.UserID,
		Title:     req.Title,
		Body:      req.Body,
		Tags:      req.Tags,
		Published: req.Published,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, post)
}

func (a Api) GetBlogPost(c *gin.Context) {
	post, err := a.elevion.GetBlogPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, post)
}

func (a Api) ListBlogPosts(c *gin.Context) {
	publishedOnly, _ := strconv.ParseBool(c.DefaultQuery("published", "false"))
	posts, err := a.elevion.ListBlogPosts(c.Request.Context(), publishedOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, posts)
}

func (a Api) UpdateBlogPost(c *gin.Context) {
	var req model2.UpdateBlogPost
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	post := &model.BlogPost{
		BlogID:    c.Param("id"),
		Title:     req.Title,
		Body:      req.Body,
		Tags:      req.Tags,
		Published: req.Published,
	}
	if err := a.elevion.UpdateBlogPost(c.Request.Context(), post); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, post)
}

func (a Api) RecordEngagement(c *gin.Context) {
	var req model2.RecordEngagement
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	metric, err := a.elevion.RecordEngagement(c.Request.Context(), model.EngagementMetric{
		UserID:     req.UserID,
		Day:        req.Day,
		PageViews:  req.PageViews,
		Visitors:   req.Visitors,
		BounceRate: req.BounceRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, metric)
}

func (a Api) GetEngagementSummary(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}
	summary, err := a.elevion.GetEngagementSummary(c.Request.Context(), c.Param("userId"), days)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, summary)
}
