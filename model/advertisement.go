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

// Advertisement is a paid placement with simple engagement counters.
// Impressions and clicks are incremented in place; CTR is derived in
// application code, never stored.
type Advertisement struct {
	AdID        string    `json:"ad_id" gorm:"primaryKey;type:varchar(64)"`
	UserID      string    `json:"user_id" gorm:"type:varchar(64);index"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Copy        string    `json:"copy" gorm:"type:text"`
	TargetURL   string    `json:"target_url" gorm:"type:varchar(512)"`
	Impressions int64     `json:"impressions" gorm:"default:0"`
	Clicks      int64     `json:"clicks" gorm:"default:0"`
	Active      bool      `json:"active" gorm:"default:true"`
	Disabled    bool      `json:"disabled" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Advertisement) TableName() string { return "advertisements" }
