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

	"gorm.io/gorm"

	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/model"
)

// CreateAdvertisement persists a new ad placement.
func (d *Datasource) CreateAdvertisement(ctx context.Context, ad model.Advertisement) (model.Advertisement, error) {
	if err := d.Conn.WithContext(ctx).Create(&ad).Error; err != nil {
		return model.Advertisement{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create advertisement", err)
	}
	return ad, nil
}

// GetAdvertisement retrieves an ad by ID.
func (d *Datasource) GetAdvertisement(ctx context.Context, id string) (*model.Advertisement, error) {
	var ad model.Advertisement
	err := d.Conn.WithContext(ctx).Where("ad_id = ?", id).First(&ad).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound,
				fmt.Sprintf("Advertisement with ID '%s' not found", id), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve advertisement", err)
	}
	return &ad, nil
}

// GetAllAdvertisements lists non-disabled ads, newest first.
func (d *Datasource) GetAllAdvertisements(ctx context.Context) ([]model.Advertisement, error) {
	var ads []model.Advertisement
	err := d.Conn.WithContext(ctx).
		Where("disabled = ?", false).
		Order("created_at DESC").
		Find(&ads).Error
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to list advertisements", err)
	}
	return ads, nil
}

// UpdateAdvertisement saves the mutable fields of an ad. Counters are managed
// by the Increment methods, never by full updates.
func (d *Datasource) UpdateAdvertisement(ctx context.Context, ad *model.Advertisement) error {
	result := d.Conn.WithContext(ctx).Model(&model.Advertisement{}).
		Where("ad_id = ?", ad.AdID).
		Updates(map[string]interface{}{
			"title":      ad.Title,
			"copy":       ad.Copy,
			"target_url": ad.TargetURL,
			"active":     ad.Active,
		})
	if result.Error != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update advertisement", result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("Advertisement with ID '%s' not found", ad.AdID), nil)
	}
	return nil
}

// DisableAdvertisement soft-deletes an ad.
func (d *Datasource) DisableAdvertisement(ctx context.Context, id string) error {
	result := d.Conn.WithContext(ctx).Model(&model.Advertisement{}).
		Where("ad_id = ?", id).
		Updates(map[string]interface{}{"disabled": true, "active": false})
	if result.Error != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to disable advertisement", result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("Advertisement with ID '%s' not found", id), nil)
	}
	return nil
}

// IncrementAdClicks bumps the click counter atomically in SQL.
func (d *Datasource) IncrementAdClicks(ctx context.Context, id string) error {
	return d.incrementAdCounter(ctx, id, "clicks")
}

// IncrementAdImpressions bumps the impression counter atomically in SQL.
func (d *Datasource) IncrementAdImpressions(ctx context.Context, id string) error {
	return d.incrementAdCounter(ctx, id, "impressions")
}

func (d *Datasource) incrementAdCounter(ctx context.Context, id, column string) error {
	result := d.Conn.WithContext(ctx).Model(&model.Advertisement{}).
		Where("ad_id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update advertisement counter", result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("Advertisement with ID '%s' not found", id), nil)
	}
	return nil
}
