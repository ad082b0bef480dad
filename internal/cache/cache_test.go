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
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevionhq/elevion/config"
)

func newTestCache(t *testing.T) Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	config.MockConfig(&config.Configuration{Redis: config.RedisConfig{Dns: mr.Addr()}})

	c, err := NewCache()
	require.NoError(t, err)
	return c
}

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	setValue := map[string]string{"hello": "world"}
	require.NoError(t, c.Set(ctx, "testKey", setValue, 10*time.Minute))

	var getValue map[string]string
	require.NoError(t, c.Get(ctx, "testKey", &getValue))
	assert.Equal(t, setValue, getValue)
}

func TestGetMissIsNotAnError(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	var getValue map[string]string
	err := c.Get(ctx, "nonExistentKey", &getValue)
	assert.NoError(t, err)
	assert.Empty(t, getValue)
}

func TestRepeatGetsReturnIdenticalPayload(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	payload := map[string]interface{}{"score": 72.0, "note": "cached"}
	require.NoError(t, c.Set(ctx, "seo:acme.example", payload, time.Hour))

	var first, second map[string]interface{}
	require.NoError(t, c.Get(ctx, "seo:acme.example", &first))
	require.NoError(t, c.Get(ctx, "seo:acme.example", &second))
	assert.Equal(t, first, second)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.Set(ctx, "testKey", "testValue", 10*time.Minute))
	require.NoError(t, c.Delete(ctx, "testKey"))

	var getValue string
	require.NoError(t, c.Get(ctx, "testKey", &getValue))
	assert.Empty(t, getValue)

	// Deleting a non-existent key is fine
	assert.NoError(t, c.Delete(ctx, "nonExistentKey"))
}
