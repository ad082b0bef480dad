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
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"github.com/typesense/typesense-go/typesense/api"

	"github.com/elevionhq/elevion/internal/apierror"
	"github.com/elevionhq/elevion/internal/search"
)

// SearchHit is one ranked result document.
type SearchHit struct {
	Document map[string]interface{} `json:"document"`
}

// SearchResponse is the result of a collection search. Fallback is true when
// the search index was unreachable and results came from the local
// Levenshtein ranking over database rows.
type SearchResponse struct {
	Hits     []SearchHit `json:"hits"`
	Found    int         `json:"found"`
	Fallback bool        `json:"fallback"`
}

var searchQueryFields = map[string]string{
	search.CollectionMarketplaceItems: "name,description,category",
	search.CollectionBlogPosts:        "title,body,tags",
}

// Search queries a collection through Typesense, degrading to a local fuzzy
// ranking over database rows when the index is unreachable.
func (e *Elevion) Search(ctx context.Context, collection, query string) (*SearchResponse, error) {
	queryBy, ok := searchQueryFields[collection]
	if !ok {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest, "Unknown search collection", nil)
	}

	params := &api.SearchCollectionParams{
		Q:       query,
		QueryBy: queryBy,
	}
	result, err := e.search.Search(ctx, collection, params)
	if err != nil {
		logrus.Warnf("typesense search failed for %s, using local fallback: %v", collection, err)
		return e.localSearch(ctx, collection, query)
	}

	response := &SearchResponse{Hits: []SearchHit{}}
	if result.Found != nil {
		response.Found = *result.Found
	}
	if result.Hits != nil {
		for _, hit := range *result.Hits {
			if hit.Document != nil {
				response.Hits = append(response.Hits, SearchHit{Document: *hit.Document})
			}
		}
	}
	return response, nil
}

// localSearch ranks database rows by Levenshtein distance between the query
// and the document's primary text fields. It is deliberately simple; the
// index is the real search engine, this only keeps the endpoint alive.
func (e *Elevion) localSearch(ctx context.Context, collection, query string) (*SearchResponse, error) {
	type candidate struct {
		doc      map[string]interface{}
		distance int
	}

	var candidates []candidate
	q := strings.ToLower(query)

	switch collection {
	case search.CollectionMarketplaceItems:
		items, err := e.datasource.GetAllMarketplaceItems(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			price, _ := item.Price.Float64()
			candidates = append(candidates, candidate{
				doc: map[string]interface{}{
					"item_id":     item.ItemID,
					"name":        item.Name,
					"description": item.Description,
					"category":    item.Category,
					"price":       price,
					"currency":    item.Currency,
				},
				distance: bestDistance(q, item.Name, item.Description, item.Category),
			})
		}
	case search.CollectionBlogPosts:
		posts, err := e.datasource.GetAllBlogPosts(ctx, true)
		if err != nil {
			return nil, err
		}
		for _, post := range posts {
			candidates = append(candidates, candidate{
				doc: map[string]interface{}{
					"blog_id": post.BlogID,
					"title":   post.Title,
					"tags":    post.Tags,
				},
				distance: bestDistance(q, post.Title, post.Tags),
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	response := &SearchResponse{Hits: []SearchHit{}, Fallback: true}
	for i, c := range candidates {
		if i >= 10 {
			break
		}
		// substring matches score zero; anything further than half the query
		// length apart is noise
		if c.distance > len(q)/2 && c.distance > 3 {
			continue
		}
		response.Hits = append(response.Hits, SearchHit{Document: c.doc})
	}
	response.Found = len(response.Hits)
	return response, nil
}

// bestDistance returns the smallest Levenshtein distance between the query
// and any whitespace-separated token of the given fields. Substring matches
// count as zero.
func bestDistance(query string, fields ...string) int {
	best := len(query) + 1
	for _, field := range fields {
		lower := strings.ToLower(field)
		if strings.Contains(lower, query) {
			return 0
		}
		for _, token := range strings.Fields(lower) {
			d := levenshtein.DistanceForStrings([]rune(query), []rune(token), levenshtein.DefaultOptions)
			if d < best {
				best = d
			}
		}
	}
	return best
}
