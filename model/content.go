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

// BlogPost is marketing-site content. Draft posts are not indexed for search.
type BlogPost struct {
	BlogID    string    `json:"blog_id" gorm:"primaryKey;type:varchar(64)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);index"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Body      string    `json:"body" gorm:"type:text"`
	Tags      string    `json:"tags" gorm:"type:varchar(512)"`
	Published bool      `json:"published" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BlogPost) TableName() string { return "blog_posts" }

// EngagementMetric is a daily rollup of site engagement used by the analytics
// summaries. Rows are append-only.
type EngagementMetric struct {
	MetricID   string    `json:"metric_id" gorm:"primaryKey;type:varchar(64)"`
	UserID     string    `json:"user_id" gorm:"type:varchar(64);index"`
	Day        time.Time `json:"day" gorm:"index"`
	PageViews  int64     `json:"page_views" gorm:"default:0"`
	Visitors   int64     `json:"visitors" gorm:"default:0"`
	BounceRate float64   `json:"bounce_rate"`
	CreatedAt  time.Time `json:"created_at"`
}

func (EngagementMetric) TableName() string { return "engagement_metrics" }
