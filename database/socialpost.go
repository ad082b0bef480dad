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

// CreateScheduledPost persists a new scheduled post row.
func (d *Datasource) CreateScheduledPost(ctx context.Context, post model.ScheduledPost) (model.ScheduledPost, error) {
	if err := d.Conn.WithContext(ctx).Create(&post).Error; err != nil {
		return model.ScheduledPost{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create scheduled post", err)
	}
	return post, nil
}

// GetScheduledPost retrieves a scheduled post by ID.
func (d *Datasource) GetScheduledPost(ctx context.Context, id string) (*model.ScheduledPost, error) {
	var post model.ScheduledPost
	err := d.Conn.WithContext(ctx).Where("post_id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound,
				fmt.Sprintf("Scheduled post with ID '%s' not found", id), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve scheduled post", err)
	}
	return &post, nil
}

// GetScheduledPostsForUser lists a user's posts ordered by scheduled time.
func (d *Datasource) GetScheduledPostsForUser(ctx context.Context, userID string) ([]model.ScheduledPost, error) {
	var posts []model.ScheduledPost
	err := d.Conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_time ASC").
		Find(&posts).Error
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to list scheduled posts", err)
	}
	return posts, nil
}

// UpdateScheduledPost saves the status machine fields of a post. PostedAt is
// written as given, including nil, so callers own the posted-at invariant.
func (d *Datasource) UpdateScheduledPost(ctx context.Context, post *model.ScheduledPost) error {
	result := d.Conn.WithContext(ctx).Model(&model.ScheduledPost{}).
		Where("post_id = ?", post.PostID).
		Updates(map[string]interface{}{
			"content":        post.Content,
			"status":         post.Status,
			"scheduled_time": post.ScheduledTime,
			"posted_at":      post.PostedAt,
			"external_id":    post.ExternalID,
			"error_message":  post.ErrorMessage,
		})
	if result.Error != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update scheduled post", result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("Scheduled post with ID '%s' not found", post.PostID), nil)
	}
	return nil
}

// MarkMissedPosts flips still-scheduled posts whose time passed before the
// worker could run them. Called at worker startup; returns the rows flipped.
func (d *Datasource) MarkMissedPosts(ctx context.Context, cutoff time.Time) (int64, error) {
	result := d.Conn.WithContext(ctx).Model(&model.ScheduledPost{}).
		Where("status = ? AND scheduled_time < ?", model.PostStatusScheduled, cutoff).
		Update("status", model.PostStatusMissed)
	if result.Error != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to mark missed posts", result.Error)
	}
	return result.RowsAffected, nil
}
