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

package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/typesense/typesense-go/typesense"
	"github.com/typesense/typesense-go/typesense/api"
)

const (
	CollectionMarketplaceItems = "marketplace_items"
	CollectionBlogPosts        = "blog_posts"
)

// CollectionConfig holds the indexing rules for one collection.
type CollectionConfig struct {
	Schema     *api.CollectionSchema
	IDField    string
	TimeFields []string
}

var collectionConfigs map[string]CollectionConfig

func init() {
	collectionConfigs = map[string]CollectionConfig{
		CollectionMarketplaceItems: {
			Schema:     getMarketplaceItemSchema(),
			IDField:    "item_id",
			TimeFields: []string{"created_at"},
		},
		CollectionBlogPosts: {
			Schema:     getBlogPostSchema(),
			IDField:    "blog_id",
			TimeFields: []string{"created_at"},
		},
	}
}

// TypesenseClient wraps the Typesense client used for marketplace and content
// search.
type TypesenseClient struct {
	Client *typesense.Client
}

// NewTypesenseClient initializes and returns a new Typesense client instance.
func NewTypesenseClient(apiKey string, hosts []string) *TypesenseClient {
	client := typesense.NewClient(
		typesense.WithServer(hosts[0]),
		typesense.WithAPIKey(apiKey),
		typesense.WithConnectionTimeout(5*time.Second),
		typesense.WithCircuitBreakerMaxRequests(50),
		typesense.WithCircuitBreakerInterval(2*time.Minute),
		typesense.WithCircuitBreakerTimeout(1*time.Minute),
	)
	return &TypesenseClient{Client: client}
}

// EnsureCollectionsExist creates any missing collections. Safe to run at every
// server start.
func (t *TypesenseClient) EnsureCollectionsExist(ctx context.Context) error {
	for name, config := range collectionConfigs {
		if _, err := t.CreateCollection(ctx, config.Schema); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return nil
}

// CreateCollection creates a collection, treating "already exists" as success.
func (t *TypesenseClient) CreateCollection(ctx context.Context, schema *api.CollectionSchema) (*api.CollectionResponse, error) {
	resp, err := t.Client.Collections().Create(ctx, schema)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil, nil
		}
		return nil, err
	}
	return resp, nil
}

// Search performs a search query on a specific collection.
func (t *TypesenseClient) Search(ctx context.Context, collection string, searchParams *api.SearchCollectionParams) (*api.SearchResult, error) {
	return t.Client.Collection(collection).Documents().Search(ctx, searchParams)
}

// MultiSearch performs one round trip covering several collections.
func (t *TypesenseClient) MultiSearch(ctx context.Context, searchRequests api.MultiSearchSearchesParameter) (*api.MultiSearchResult, error) {
	return t.Client.MultiSearch.Perform(ctx, &api.MultiSearchParams{}, searchRequests)
}

// HandleIndexData normalizes a document and upserts it into its collection.
// Unknown collections are rejected so a bad queue payload cannot create stray
// schemas.
func (t *TypesenseClient) HandleIndexData(ctx context.Context, collection string, data map[string]interface{}) error {
	config, ok := collectionConfigs[collection]
	if !ok {
		return fmt.Errorf("unknown collection: %s", collection)
	}

	t.ensureSchemaFields(config, data)
	t.normalizeTimeFields(config, data)

	return t.upsertDocument(ctx, collection, data)
}

// ensureSchemaFields backfills missing schema fields with zero values so
// Typesense does not reject partial documents.
func (t *TypesenseClient) ensureSchemaFields(config CollectionConfig, data map[string]interface{}) {
	for _, field := range config.Schema.Fields {
		if _, exists := data[field.Name]; !exists {
			data[field.Name] = getDefaultValue(field.Type)
		}
	}
}

// normalizeTimeFields converts RFC3339 strings to unix seconds, the only time
// representation the schemas use.
func (t *TypesenseClient) normalizeTimeFields(config CollectionConfig, data map[string]interface{}) {
	for _, field := range config.TimeFields {
		value, ok := data[field]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if parsed, err := time.Parse(time.RFC3339, v); err == nil {
				data[field] = parsed.Unix()
			} else {
				data[field] = int64(0)
			}
		case time.Time:
			data[field] = v.Unix()
		case float64:
			data[field] = int64(v)
		}
	}
}

func (t *TypesenseClient) upsertDocument(ctx context.Context, collection string, data map[string]interface{}) error {
	config := collectionConfigs[collection]
	if id, ok := data[config.IDField].(string); ok {
		data["id"] = id
	}

	_, err := t.Client.Collection(collection).Documents().Upsert(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to index document in Typesense: %w", err)
	}
	return nil
}

func getDefaultValue(fieldType string) interface{} {
	switch fieldType {
	case "string":
		return ""
	case "int32", "int64":
		return int64(0)
	case "float":
		return float64(0)
	case "bool":
		return false
	case "string[]":
		return []string{}
	default:
		return nil
	}
}

func getMarketplaceItemSchema() *api.CollectionSchema {
	facet := true
	sortBy := "created_at"
	return &api.CollectionSchema{
		Name: CollectionMarketplaceItems,
		Fields: []api.Field{
			{Name: "item_id", Type: "string", Facet: &facet},
			{Name: "user_id", Type: "string", Facet: &facet},
			{Name: "name", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "category", Type: "string", Facet: &facet},
			{Name: "price", Type: "float", Facet: &facet},
			{Name: "currency", Type: "string", Facet: &facet},
			{Name: "available", Type: "bool", Facet: &facet},
			{Name: "created_at", Type: "int64", Facet: &facet},
		},
		DefaultSortingField: &sortBy,
	}
}

func getBlogPostSchema() *api.CollectionSchema {
	facet := true
	sortBy := "created_at"
	return &api.CollectionSchema{
		Name: CollectionBlogPosts,
		Fields: []api.Field{
			{Name: "blog_id", Type: "string", Facet: &facet},
			{Name: "user_id", Type: "string", Facet: &facet},
			{Name: "title", Type: "string"},
			{Name: "body", Type: "string"},
			{Name: "tags", Type: "string"},
			{Name: "published", Type: "bool", Facet: &facet},
			{Name: "created_at", Type: "int64", Facet: &facet},
		},
		DefaultSortingField: &sortBy,
	}
}
