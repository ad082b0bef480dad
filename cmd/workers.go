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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	elevion "github.com/elevionhq/elevion"
	"github.com/elevionhq/elevion/config"
	redis_db "github.com/elevionhq/elevion/internal/redis-db"
	"github.com/elevionhq/elevion/internal/search"
)

// dispatchSocialPost handles a scheduled post dispatch task from the Redis
// queue. The task only carries the post ID; the service re-reads the row, so
// a post that was cancelled or rescheduled after enqueueing is skipped. A
// publish failure marks the post failed and is not retried.
func (e *elevionInstance) dispatchSocialPost(ctx context.Context, t *asynq.Task) error {
	ctx, span := otel.Tracer("elevion.social.worker").Start(ctx, "Dispatch Scheduled Post From Redis Queue")
	defer span.End()

	var payload elevion.SocialDispatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logrus.Error(err)
		return err
	}

	if err := e.elevion.DispatchScheduledPost(ctx, payload.PostID); err != nil {
		logrus.Infof("Post %s pushed back for retry due to error: %v", payload.PostID, err)
		return err
	}

	log.Println(" [*] Post Dispatched", payload.PostID)
	return nil
}

// indexData indexes data into TypeSense for searchability. It fetches the
// collection name and payload from the task, ensures the collections exist,
// and upserts the payload into the appropriate TypeSense collection.
func (e *elevionInstance) indexData(ctx context.Context, t *asynq.Task) error {
	var data elevion.IndexPayload

	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		logrus.Error(err)
		return err
	}

	newSearch := search.NewTypesenseClient(e.cnf.TypeSenseKey, []string{e.cnf.TypeSense.Dns})
	err := newSearch.EnsureCollectionsExist(ctx)
	if err != nil {
		log.Printf("Failed to ensure collections exist: %v", err)
		return err
	}

	err = newSearch.HandleIndexData(ctx, data.Collection, data.Payload)
	if err != nil {
		log.Println("Error indexing data", err)
		return err
	}

	log.Println(" [*] Data indexed", data.Collection)
	return nil
}

func initializeQueues() map[string]int {
	cfg, err := config.Fetch()
	if err != nil {
		log.Printf("Error fetching config, using defaults: %v", err)
		return nil
	}

	queues := make(map[string]int)
	queues[cfg.Queue.SocialDispatchQueue] = 3
	queues[cfg.Queue.IndexQueue] = 1
	return queues
}

func initializeWorkerServer(conf *config.Configuration, queues map[string]int) (*asynq.Server, error) {
	redisOption, err := redis_db.ParseRedisURL(conf.Redis.Dns, conf.Redis.SkipTLSVerify)
	if err != nil {
		return nil, fmt.Errorf("error parsing Redis URL: %v", err)
	}

	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:      redisOption.Addr,
			Password:  redisOption.Password,
			DB:        redisOption.DB,
			TLSConfig: redisOption.TLSConfig,
		},
		asynq.Config{
			Concurrency: 1,
			Queues:      queues,
		},
	), nil
}

func initializeTaskHandlers(e *elevionInstance, mux *asynq.ServeMux) {
	cfg, err := config.Fetch()
	if err != nil {
		log.Printf("Error fetching config, using defaults: %v", err)
		return
	}

	mux.HandleFunc(cfg.Queue.SocialDispatchQueue, e.dispatchSocialPost)
	mux.HandleFunc(cfg.Queue.IndexQueue, e.indexData)
}

// workerCommands defines the "workers" command to start worker processes.
// The workers consume the social dispatch and search indexing queues. Posts
// whose scheduled time passed while no worker was running are marked missed
// on startup.
func workerCommands(e *elevionInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workers",
		Short: "start elevion workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			conf, err := config.Fetch()
			if err != nil {
				log.Fatal("Error fetching config:", err)
			}

			phClient, shutdown, err := initializeObservability(ctx, conf)
			if err != nil {
				log.Fatal(err)
			}
			if shutdown != nil {
				defer func() {
					if err := shutdown(ctx); err != nil {
						log.Printf("Error during shutdown: %v", err)
					}
				}()
			}
			if phClient != nil {
				defer phClient.Close()
			}

			// Sweep posts stranded by downtime before consuming new tasks.
			missed, err := e.elevion.SweepMissedPosts(ctx)
			if err != nil {
				log.Printf("Error sweeping missed posts: %v", err)
			} else if missed > 0 {
				log.Printf(" [*] Marked %d overdue posts as missed", missed)
			}

			queues := initializeQueues()

			srv, err := initializeWorkerServer(conf, queues)
			if err != nil {
				log.Fatal(err)
			}

			mux := asynq.NewServeMux()
			initializeTaskHandlers(e, mux)

			// Start asynqmon server for health checks and monitoring
			redisOption, _ := redis_db.ParseRedisURL(conf.Redis.Dns, conf.Redis.SkipTLSVerify)
			h := asynqmon.New(asynqmon.Options{
				RootPath: "/monitoring",
				RedisConnOpt: asynq.RedisClientOpt{
					Addr:      redisOption.Addr,
					Password:  redisOption.Password,
					DB:        redisOption.DB,
					TLSConfig: redisOption.TLSConfig,
				},
			})

			go func() {
				monitoringAddr := fmt.Sprintf(":%s", conf.Queue.MonitoringPort)
				log.Printf("Asynqmon server listening on %s/monitoring", monitoringAddr)
				if err := http.ListenAndServe(monitoringAddr, h); err != nil {
					log.Fatalf("could not start asynqmon server: %v", err)
				}
			}()

			if err := srv.Run(mux); err != nil {
				log.Fatalf("could not run server: %v", err)
			}
		},
	}

	return cmd
}
