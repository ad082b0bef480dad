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
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/elevionhq/elevion/config"
	redis_db "github.com/elevionhq/elevion/internal/redis-db"
	"github.com/elevionhq/elevion/model"
)

// Queue wraps the asynq client used to defer social dispatch and search
// indexing work to the workers process.
type Queue struct {
	Client    *asynq.Client
	Inspector *asynq.Inspector
}

// SocialDispatchPayload is the task body for a scheduled post dispatch.
type SocialDispatchPayload struct {
	PostID string `json:"post_id"`
}

// IndexPayload is the task body for a search indexing request.
type IndexPayload struct {
	Collection string                 `json:"collection"`
	Payload    map[string]interface{} `json:"payload"`
}

// NewQueue initializes a new Queue instance from the provided configuration.
func NewQueue(conf *config.Configuration) *Queue {
	redisOption, err := redis_db.ParseRedisURL(conf.Redis.Dns, conf.Redis.SkipTLSVerify)
	if err != nil {
		log.Fatalf("Error parsing Redis URL: %v", err)
	}

	queueOptions := asynq.RedisClientOpt{Addr: redisOption.Addr, Password: redisOption.Password, DB: redisOption.DB, TLSConfig: redisOption.TLSConfig}
	client := asynq.NewClient(queueOptions)
	inspector := asynq.NewInspector(queueOptions)
	return &Queue{
		Client:    client,
		Inspector: inspector,
	}
}

// EnqueueSocialPost schedules a dispatch task to fire at the post's scheduled
// time. The task carries only the post ID; the worker re-reads the row so a
// later cancel or reschedule makes the stale task a no-op.
func (q *Queue) EnqueueSocialPost(ctx context.Context, post *model.ScheduledPost) error {
	cfg, err := config.Fetch()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(SocialDispatchPayload{PostID: post.PostID})
	if err != nil {
		return err
	}

	taskOptions := []asynq.Option{
		asynq.Queue(cfg.Queue.SocialDispatchQueue),
		asynq.ProcessIn(time.Until(post.ScheduledTime)),
		asynq.MaxRetry(cfg.Queue.MaxRetryAttempts),
	}
	task := asynq.NewTask(cfg.Queue.SocialDispatchQueue, payload, taskOptions...)
	info, err := q.Client.EnqueueContext(ctx, task)
	if err != nil {
		log.Println(err, info)
		return err
	}
	log.Printf(" [*] Successfully enqueued social dispatch: %+v", post.PostID)
	return nil
}

// EnqueueIndexData enqueues a document for search indexing. A blank typesense
// DNS disables indexing entirely.
func (q *Queue) EnqueueIndexData(ctx context.Context, id string, collection string, data map[string]interface{}) error {
	cfg, err := config.Fetch()
	if err != nil {
		return err
	}

	if cfg.TypeSense.Dns == "" {
		return nil
	}

	payload, err := json.Marshal(IndexPayload{Collection: collection, Payload: data})
	if err != nil {
		return err
	}

	taskOptions := []asynq.Option{asynq.Queue(cfg.Queue.IndexQueue)}
	task := asynq.NewTask(cfg.Queue.IndexQueue, payload, taskOptions...)
	info, err := q.Client.EnqueueContext(ctx, task)
	if err != nil {
		log.Println(err, info)
		return err
	}
	log.Printf(" [*] Successfully enqueued index data: %+v", id)
	return nil
}
