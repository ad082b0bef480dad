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

	"github.com/gin-gonic/gin"

	model2 "github.com/elevionhq/elevion/api/model"
	"github.com/elevionhq/elevion/model"
)

func (a Api) CreateAdvertisement(c *gin.Context) {
	var req model2.CreateAd
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	ad, err := a.elevion.CreateAdvertisement(c.Request.Context(), model.Advertisement{
		UserID:    req.UserID,
		Title:     req.Title,
		Copy:      req.Copy,
		TargetURL: req.TargetURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, ad)
}

func (a Api) GetAdvertisement(c *gin.Context) {
	ad, err := a.elevion.GetAdvertisement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, ad)
}

func (a Api) ListAdvertisements(c *gin.Context) {
	ads, err := a.elevion.ListAdvertisements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, ads)
}

func (a Api) UpdateAdvertisement(c *gin.Context) {
	var req model2.UpdateAd
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	ad := &model.Advertisement{
		AdID:      c.Param("id"),
		Title:     req.Title,
		Copy:      req.Copy,
		TargetURL: req.TargetURL,
		Active:    req.Active == nil || *req.Active,
	}
	if err := a.elevion.UpdateAdvertisement(c.Request.Context(), ad); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, ad)
}

func (a Api) DisableAdvertisement(c *gin.Context) {
	if err := a.elevion.DisableAdvertisement(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"disabled": true})
}

func (a Api) TrackAdClick(c *gin.Context) {
	if err := a.elevion.TrackAdClick(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tracked": true})
}

func (a Api) TrackAdImpression(c *gin.Context) {
	if err := a.elevion.TrackAdImpression(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tracked": true})
}

func (a Api) GenerateAdCopy(c *gin.Context) {
	var req model2.GenerateAdCopy
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	adCopy, fallback, err := a.elevion.GenerateAdCopy(c.Request.Context(), req.Product, req.Audience)
	if err != nil {
		respondError(c, err)
		return
	}
	respondFallback(c, adCopy, fallback)
}

func (a Api) GetAdPerformance(c *gin.Context) {
	performance, fallback, err := a.elevion.GetAdPerformance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondFallback(c, performance, fallback)
}
