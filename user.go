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

	"github.com/elevionhq/elevion/model"
)

// CreateUser persists a new account owner.
func (e *Elevion) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	user.UserID = model.GenerateUUIDWithSuffix("usr")
	return e.datasource.CreateUser(ctx, user)
}

// GetUser returns one user.
func (e *Elevion) GetUser(ctx context.Context, id string) (*model.User, error) {
	return e.datasource.GetUser(ctx, id)
}

// GetUserByEmail returns the user owning an email address.
func (e *Elevion) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return e.datasource.GetUserByEmail(ctx, email)
}
