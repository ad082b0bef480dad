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
)

func (a Api) SchedulePost(c *gin.Context) {
	var req model2.SchedulePost
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	post, err := a.elevion.SchedulePost(c.Request.Context(), req.UserID, req.Content, req.ScheduledTime)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, post)
}

func (a Api) SaveDraftPost(c *gin.Context) {
	var req model2.DraftPost
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	post, err := a.elevion.SaveDraftPost(c.Request.Context(), req.UserID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, post)
}

func (a Api) ListScheduledPosts(c *gin.Context) {
	posts, err := a.elevion.ListScheduledPosts(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, posts)
}

func (a Api) GetScheduledPost(c *gin.Context) {
	post, err := a.elevion.GetScheduledPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, post)
}

func (a Api) CancelScheduledPost(c *gin.Context) {
	post, err := a.elevion.CancelScheduledPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, post)
}

func (a Api) ReschedulePost(c *gin.Context) {
	var req model2.ReschedulePost
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	post, err := a.elevion.ReschedulePost(c.Request.Context(), c.Param("id"), req.ScheduledTime)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, post)
}

func (a Api) CheckTwitterCredentials(c *gin.Context) {
	check, err := a.elevion.CheckTwitterCredentials()
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, check)
}
