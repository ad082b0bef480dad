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
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	elevion "github.com/elevionhq/elevion"
	"github.com/elevionhq/elevion/api/middleware"
	"github.com/elevionhq/elevion/config"
)

type Api struct {
	elevion *elevion.Elevion
	router  *gin.Engine
}

// Router wires every endpoint under /api. The envelope, validation and error
// mapping all live in the handlers; this is routing only.
func (a Api) Router() *gin.Engine {
	router := a.router

	api := router.Group("/api")

	api.POST("/users", a.CreateUser)
	api.GET("/users/:id", a.GetUser)

	api.POST("/marketplace", a.CreateMarketplaceItem)
	api.GET("/marketplace", a.ListMarketplaceItems)
	api.GET("/marketplace/sales-analytics", a.GetSalesAnalytics)
	api.GET("/marketplace/recommendations", a.GetItemRecommendations)
	api.POST("/marketplace/price-suggestion", a.GetPriceSuggestion)
	api.POST("/marketplace/purchase", a.PurchaseItem)
	api.GET("/marketplace/orders", a.ListOrders)
	api.GET("/marketplace/orders/:id", a.GetOrder)
	api.POST("/marketplace/orders/:id/confirm", a.ConfirmOrder)
	api.POST("/marketplace/orders/:id/cancel", a.CancelOrder)
	api.GET("/marketplace/:id", a.GetMarketplaceItem)
	api.PUT("/marketplace/:id", a.UpdateMarketplaceItem)
	api.DELETE("/marketplace/:id", a.DisableMarketplaceItem)

	api.POST("/advertisement", a.CreateAdvertisement)
	api.GET("/advertisement", a.ListAdvertisements)
	api.POST("/advertisement/generate-copy", a.GenerateAdCopy)
	api.GET("/advertisement/:id", a.GetAdvertisement)
	api.PUT("/advertisement/:id", a.UpdateAdvertisement)
	api.DELETE("/advertisement/:id", a.DisableAdvertisement)
	api.POST("/advertisement/:id/click", a.TrackAdClick)
	api.POST("/advertisement/:id/impression", a.TrackAdImpression)
	api.GET("/advertisement/:id/performance", a.GetAdPerformance)

	api.POST("/twitter/schedule", a.SchedulePost)
	api.POST("/twitter/draft", a.SaveDraftPost)
	api.GET("/twitter/posts", a.ListScheduledPosts)
	api.GET("/twitter/posts/:id", a.GetScheduledPost)
	api.POST("/twitter/posts/:id/cancel", a.CancelScheduledPost)
	api.POST("/twitter/posts/:id/reschedule", a.ReschedulePost)
	api.GET("/twitter/credentials-check", a.CheckTwitterCredentials)

	api.POST("/content/seo-analysis", a.AnalyzeSEO)
	api.POST("/content/generate", a.GenerateBlog)
	api.POST("/content/blog", a.CreateBlogPost)
	api.GET("/content/blog", a.ListBlogPosts)
	api.GET("/content/blog/:id", a.GetBlogPost)
	api.PUT("/content/blog/:id", a.UpdateBlogPost)
	api.POST("/content/engagement", a.RecordEngagement)
	api.GET("/content/engagement/:userId", a.GetEngagementSummary)

	api.POST("/ux/analyze-ui-improvements", a.AnalyzeUIImprovements)

	api.POST("/subscriptions", a.CreateSubscription)
	api.GET("/subscriptions/:id", a.GetSubscription)
	api.POST("/subscriptions/:id/cancel", a.CancelSubscription)

	api.POST("/search/:collection", a.Search)

	return a.router
}

// NewAPI builds the gin engine with tracing, rate limiting and optional
// secret-key auth, per configuration.
func NewAPI(e *elevion.Elevion) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}

	r := gin.Default()
	r.Use(otelgin.Middleware("elevion-api"))
	r.Use(middleware.RateLimitMiddleware(conf))
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{elevion: e, router: r}
}
