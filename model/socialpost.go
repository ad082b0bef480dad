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

import "time"

// Scheduled post statuses. Terminal states are posted, cancelled and failed;
// missed is retryable via reschedule.
const (
	PostStatusDraft      = "draft"
	PostStatusScheduled  = "scheduled"
	PostStatusProcessing = "processing"
	PostStatusPosted     = "posted"
	PostStatusFailed     = "failed"
	PostStatusCancelled  = "cancelled"
	PostStatusMissed     = "missed"
)

// ScheduledPost is a social post queued for future delivery to Twitter/X.
// Invariants: PostedAt is set iff Status == posted, and ExternalID is set iff
// the post was actually submitted to the platform.
type ScheduledPost struct {
	PostID        string     `json:"post_id" gorm:"primaryKey;type:varchar(64)"`
	UserID        string     `json:"user_id" gorm:"type:varchar(64);index"`
	Content       string     `json:"content" gorm:"type:text;not null"`
	Status        string     `json:"status" gorm:"type:varchar(20);index;default:'draft'"`
	ScheduledTime time.Time  `json:"scheduled_time" gorm:"index"`
	PostedAt      *time.Time `json:"posted_at,omitempty"`
	ExternalID    string     `json:"external_id,omitempty" gorm:"type:varchar(64)"`
	ErrorMessage  string     `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (ScheduledPost) TableName() string { return "scheduled_posts" }

// Cancellable reports whether the post can still be cancelled by the user.
func (p *ScheduledPost) Cancellable() bool {
	return p.Status == PostStatusDraft || p.Status == PostStatusScheduled
}

// Reschedulable reports whether the post can be moved to a new scheduled time.
func (p *ScheduledPost) Reschedulable() bool {
	return p.Status == PostStatusScheduled || p.Status == PostStatusMissed || p.Status == PostStatusDraft
}
