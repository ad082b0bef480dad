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

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/model"
)

// CreateBlogPost persists a new blog post.
func (d *Datasource) CreateBlogPost(ctx context.Context, post model.BlogPost) (model.BlogPost, error) {
	if err := d.Conn.WithContext(ctx).Create(&post).Error; err != nil {
		return model.BlogPost{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create blog post", err)
	}
	return post, nil
}

// GetBlogPost retrieves a blog post by ID.
func (d *Datasource) GetBlogPost(ctx context.Context, id string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := d.Conn.WithContext(ctx).Where("blog_id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound,
				fmt.Sprintf("Blog post with ID '%s' not found", id), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve blog post", err)
	}
	return &post, nil
}

// GetAllBlogPosts lists blog posts, optionally restricted to published ones.
func (d *Datasource) GetAllBlogPosts(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	query := d.Conn.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to list blog posts", err)
	}
	return posts, nil
}

// UpdateBlogPost saves the mutable fields of a blog post.
func (d *Datasource) UpdateBlogPost(ctx context.Context, post *model.BlogPost) error {
	result := d.Conn.WithContext(ctx).Model(&model.BlogPost{}).
		Where("blog_id = ?", post.BlogID).
		Updates(map[string]interface{}{
			"title":     post.Title,
			"body":      post.Body,
			"tags":      post.Tags,
			"published": post.Published,
		})
	if result.Error != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update blog post", result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("Blog post with ID '%s' not found", post.BlogID), nil)
	}
	return nil
}

// CreateEngagementMetric appends a daily engagement rollup row.
func (d *Datasource) CreateEngagementMetric(ctx context.Context, metric model.EngagementMetric) (model.EngagementMetric, error) {
	if err := d.Conn.WithContext(ctx).Create(&metric).Error; err != nil {
		return model.EngagementMetric{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create engagement metric", err)
	}
	return metric, nil
}

// GetEngagementMetrics lists a user's engagement rollups since a given day.
func (d *Datasource) GetEngagementMetrics(ctx context.Context, userID string, since time.Time) ([]model.EngagementMetric, error) {
	var metrics []model.EngagementMetric
	err := d.Conn.WithContext(ctx).
		Where("user_id = ? AND day >= ?", userID, since).
		Order("day ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to list engagement metrics", err)
	}
	return metrics, nil
}
