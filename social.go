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
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wacul/ptr"

	"github.com/elevionhq/elevion/config"
	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/model"
)

// CredentialsCheck reports whether the Twitter/X integration is usable and
// which credential variables are missing.
type CredentialsCheck struct {
	Configured bool     `json:"configured"`
	Missing    []string `json:"missing"`
}

// SchedulePost validates and persists a post for future delivery, then queues
// a dispatch task that fires at the scheduled time.
func (e *Elevion) SchedulePost(ctx context.Context, userID, content string, scheduledTime time.Time) (*model.ScheduledPost, error) {
	if !scheduledTime.After(time.Now()) {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest, "Scheduled time must be in the future", nil)
	}

	post, err := e.datasource.CreateScheduledPost(ctx, model.ScheduledPost{
		PostID:        model.GenerateUUIDWithSuffix("post"),
		UserID:        userID,
		Content:       content,
		Status:        model.PostStatusScheduled,
		ScheduledTime: scheduledTime,
	})
	if err != nil {
		return nil, err
	}

	if err := e.queue.EnqueueSocialPost(ctx, &post); err != nil {
		logrus.Warnf("failed to enqueue dispatch for %s: %v", post.PostID, err)
	}
	return &post, nil
}

// SaveDraftPost stores a post without a delivery time. Drafts can later be
// scheduled through ReschedulePost.
func (e *Elevion) SaveDraftPost(ctx context.Context, userID, content string) (*model.ScheduledPost, error) {
	post, err := e.datasource.CreateScheduledPost(ctx, model.ScheduledPost{
		PostID:  model.GenerateUUIDWithSuffix("post"),
		UserID:  userID,
		Content: content,
		Status:  model.PostStatusDraft,
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetScheduledPost returns one post.
func (e *Elevion) GetScheduledPost(ctx context.Context, id string) (*model.ScheduledPost, error) {
	return e.datasource.GetScheduledPost(ctx, id)
}

// ListScheduledPosts returns a user's posts ordered by scheduled time.
func (e *Elevion) ListScheduledPosts(ctx context.Context, userID string) ([]model.ScheduledPost, error) {
	return e.datasource.GetScheduledPostsForUser(ctx, userID)
}

// CancelScheduledPost cancels a draft or scheduled post. Cancelling an already
// cancelled post is a no-op; any other status is a terminal state and rejected.
// The pending dispatch task is left in place: the worker re-reads the row and
// skips anything no longer scheduled.
func (e *Elevion) CancelScheduledPost(ctx context.Context, id string) (*model.ScheduledPost, error) {
	post, err := e.datasource.GetScheduledPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.Status == model.PostStatusCancelled {
		return post, nil
	}
	if !post.Cancellable() {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest,
			fmt.Sprintf("Post in status '%s' cannot be cancelled", post.Status), nil)
	}

	post.Status = model.PostStatusCancelled
	if err := e.datasource.UpdateScheduledPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ReschedulePost moves a draft, scheduled or missed post to a new future time
// and returns it to the scheduled state with a fresh dispatch task.
func (e *Elevion) ReschedulePost(ctx context.Context, id string, scheduledTime time.Time) (*model.ScheduledPost, error) {
	if !scheduledTime.After(time.Now()) {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest, "Scheduled time must be in the future", nil)
	}

	post, err := e.datasource.GetScheduledPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.Reschedulable() {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest,
			fmt.Sprintf("Post in status '%s' cannot be rescheduled", post.Status), nil)
	}

	post.Status = model.PostStatusScheduled
	post.ScheduledTime = scheduledTime
	post.ErrorMessage = ""
	if err := e.datasource.UpdateScheduledPost(ctx, post); err != nil {
		return nil, err
	}

	if err := e.queue.EnqueueSocialPost(ctx, post); err != nil {
		logrus.Warnf("failed to enqueue dispatch for %s: %v", post.PostID, err)
	}
	return post, nil
}

// DispatchScheduledPost is the worker-side delivery. It re-reads the post and
// skips anything not in the scheduled state, which makes stale tasks from
// cancels and reschedules benign. On success it records the platform post ID
// and the delivery time; on failure it records the error and parks the post in
// the failed state.
func (e *Elevion) DispatchScheduledPost(ctx context.Context, postID string) error {
	// Serialize duplicate tasks for the same post across workers; the loser
	// waits, then re-reads the row and sees the holder's status transition.
	if locker := e.tryLock(ctx, "social:dispatch:"+postID, time.Minute, 10*time.Second); locker != nil {
		defer func() {
			if err := locker.Unlock(ctx); err != nil {
				logrus.Debugf("unlock failed: %v", err)
			}
		}()
	}

	post, err := e.datasource.GetScheduledPost(ctx, postID)
	if err != nil {
		return err
	}

	if post.Status != model.PostStatusScheduled {
		logrus.WithFields(logrus.Fields{"post_id": postID, "status": post.Status}).
			Info("skipping dispatch for non-scheduled post")
		return nil
	}

	post.Status = model.PostStatusProcessing
	if err := e.datasource.UpdateScheduledPost(ctx, post); err != nil {
		return err
	}

	externalID, err := e.social.PostTweet(ctx, post.Content)
	if err != nil {
		post.Status = model.PostStatusFailed
		post.ErrorMessage = err.Error()
		if uerr := e.datasource.UpdateScheduledPost(ctx, post); uerr != nil {
			logrus.Errorf("failed to record dispatch failure for %s: %v", postID, uerr)
		}
		logrus.WithField("post_id", postID).Errorf("dispatch failed: %v", err)
		return nil
	}

	post.Status = model.PostStatusPosted
	post.PostedAt = ptr.Time(time.Now())
	post.ExternalID = externalID
	if err := e.datasource.UpdateScheduledPost(ctx, post); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"post_id": postID, "external_id": externalID}).Info("post delivered")
	return nil
}

// SweepMissedPosts marks still-scheduled posts whose time has already passed.
// Runs when the workers process starts, catching posts whose dispatch window
// fell into downtime.
func (e *Elevion) SweepMissedPosts(ctx context.Context) (int64, error) {
	flipped, err := e.datasource.MarkMissedPosts(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if flipped > 0 {
		logrus.Infof("marked %d posts as missed", flipped)
	}
	return flipped, nil
}

// CheckTwitterCredentials reports which credential variables are missing.
func (e *Elevion) CheckTwitterCredentials() (*CredentialsCheck, error) {
	conf, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	missing := conf.MissingTwitterCredentials()
	return &CredentialsCheck{Configured: len(missing) == 0, Missing: missing}, nil
}
