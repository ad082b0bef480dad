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
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/internal/notification"
)

// All responses share one envelope: {"success": bool, "data"|"error", ...}.
// Degraded-but-successful AI responses additionally carry "fallback": true.

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondFallback(c *gin.Context, data interface{}, fallback bool) {
	if fallback {
		c.JSON(http.StatusOK, gin.H{"success": true, "fallback": true, "data": data})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondValidationError renders a 400 with a details array, one entry per
// failed field.
func respondValidationError(c *gin.Context, err error) {
	details := []string{}
	if fieldErrors, ok := err.(validation.Errors); ok {
		for field, fieldErr := range fieldErrors {
			details = append(details, fmt.Sprintf("%s: %s", field, fieldErr.Error()))
		}
		sort.Strings(details)
	} else {
		details = append(details, err.Error())
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "details": details})
}

// respondError maps domain errors to HTTP status codes. Unexpected errors are
// reported to the notification channel.
func respondError(c *gin.Context, err error) {
	status := apierror.MapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		notification.NotifyError(err)
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
