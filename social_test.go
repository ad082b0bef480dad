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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/model"
)

func TestSchedulePostRejectsPastTime(t *testing.T) {
	e, queue, _, _ := newTestElevion(t, "")

	_, err := e.SchedulePost(context.Background(), "usr_1", "hello", time.Now().Add(-time.Minute))
	require.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrBadRequest, apiErr.Code)
	assert.Empty(t, queue.dispatches)
}

func TestSchedulePostEnqueuesDispatch(t *testing.T) {
	e, queue, _, _ := newTestElevion(t, "")

	post, err := e.SchedulePost(context.Background(), "usr_1", "launch day!", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusScheduled, post.Status)
	assert.Equal(t, []string{post.PostID}, queue.dispatches)
}

func TestCancelScheduledPostIsTerminalAndIdempotent(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	post, err := e.SchedulePost(ctx, "usr_1", "cancel me", time.Now().Add(time.Hour))
	require.NoError(t, err)

	cancelled, err := e.CancelScheduledPost(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusCancelled, cancelled.Status)

	// second cancel is a no-op
	again, err := e.CancelScheduledPost(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusCancelled, again.Status)

	// cancelled is terminal: reschedule is rejected
	_, err = e.ReschedulePost(ctx, post.PostID, time.Now().Add(time.Hour))
	require.Error(t, err)
}

func TestCancelPostedPostRejected(t *testing.T) {
	e, _, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	post, err := e.SchedulePost(ctx, "usr_1", "already out", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, e.DispatchScheduledPost(ctx, post.PostID))

	_, err = e.CancelScheduledPost(ctx, post.PostID)
	require.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrBadRequest, apiErr.Code)
}

func TestRescheduleMissedPostReturnsToScheduled(t *testing.T) {
	e, queue, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	post, err := e.SchedulePost(ctx, "usr_1", "late post", time.Now().Add(time.Millisecond))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	flipped, err := e.SweepMissedPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), flipped)

	rescheduled, err := e.ReschedulePost(ctx, post.PostID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusScheduled, rescheduled.Status)
	assert.Len(t, queue.dispatches, 2)
}

func TestDispatchRecordsExternalIDAndPostedAt(t *testing.T) {
	e, _, _, soc := newTestElevion(t, "")
	ctx := context.Background()

	post, err := e.SchedulePost(ctx, "usr_1", "good news everyone", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, e.DispatchScheduledPost(ctx, post.PostID))

	got, err := e.GetScheduledPost(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusPosted, got.Status)
	require.NotNil(t, got.PostedAt)
	assert.Equal(t, "1790000000000000000", got.ExternalID)
	assert.Equal(t, []string{"good news everyone"}, soc.posted)
}

func TestDispatchFailureParksPostAsFailed(t *testing.T) {
	e, _, _, soc := newTestElevion(t, "")
	soc.err = errors.New("403 Forbidden")
	ctx := context.Background()

	post, err := e.SchedulePost(ctx, "usr_1", "never leaves", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, e.DispatchScheduledPost(ctx, post.PostID))

	got, err := e.GetScheduledPost(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusFailed, got.Status)
	assert.Nil(t, got.PostedAt)
	assert.Empty(t, got.ExternalID)
	assert.Contains(t, got.ErrorMessage, "403")
}

func TestDispatchSkipsCancelledPost(t *testing.T) {
	e, _, _, soc := newTestElevion(t, "")
	ctx := context.Background()

	post, err := e.SchedulePost(ctx, "usr_1", "stale task", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = e.CancelScheduledPost(ctx, post.PostID)
	require.NoError(t, err)

	require.NoError(t, e.DispatchScheduledPost(ctx, post.PostID))

	got, err := e.GetScheduledPost(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusCancelled, got.Status)
	assert.Empty(t, soc.posted)
}

func TestDraftPostCanBeScheduledViaReschedule(t *testing.T) {
	e, queue, _, _ := newTestElevion(t, "")
	ctx := context.Background()

	draft, err := e.SaveDraftPost(ctx, "usr_1", "draft copy")
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusDraft, draft.Status)
	assert.Empty(t, queue.dispatches)

	scheduled, err := e.ReschedulePost(ctx, draft.PostID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusScheduled, scheduled.Status)
	assert.Equal(t, []string{draft.PostID}, queue.dispatches)
}
