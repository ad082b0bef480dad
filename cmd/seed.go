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
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/elevionhq/elevion/model"
)

var seedCategories = []string{"design", "home-services", "consulting", "crafts", "wellness"}

// seedCommands creates demo data: a handful of business accounts, each with
// marketplace listings, an ad campaign, blog content and engagement history.
// Useful for local development and demos against an empty database.
func seedCommands(e *elevionInstance) *cobra.Command {
	var businesses int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "populate the database with demo data",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			for i := 0; i < businesses; i++ {
				if err := seedBusiness(ctx, e); err != nil {
					log.Fatalf("Error seeding demo data: %v", err)
				}
			}
			fmt.Printf("Seeded %d demo businesses!\n", businesses)
		},
	}

	cmd.Flags().IntVar(&businesses, "businesses", 5, "number of demo businesses to create")

	return cmd
}

func seedBusiness(ctx context.Context, e *elevionInstance) error {
	company := gofakeit.Company()
	user, err := e.elevion.CreateUser(ctx, model.User{
		Email:        gofakeit.Email(),
		BusinessName: company,
	})
	if err != nil {
		return err
	}

	category := seedCategories[gofakeit.Number(0, len(seedCategories)-1)]
	for i := 0; i < gofakeit.Number(2, 5); i++ {
		item, err := e.elevion.CreateMarketplaceItem(ctx, model.MarketplaceItem{
			UserID:      user.UserID,
			Name:        gofakeit.ProductName(),
			Description: gofakeit.Sentence(12),
			Category:    category,
			Price:       decimal.NewFromFloat(gofakeit.Price(10, 250)).Round(2),
			Currency:    "USD",
			Available:   true,
		})
		if err != nil {
			return err
		}
		log.Printf(" [*] Seeded item %s for %s", item.ItemID, company)
	}

	_, err = e.elevion.CreateAdvertisement(ctx, model.Advertisement{
		UserID:    user.UserID,
		Title:     fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), company),
		Copy:      gofakeit.Sentence(8),
		TargetURL: gofakeit.URL(),
		Active:    true,
	})
	if err != nil {
		return err
	}

	_, err = e.elevion.CreateBlogPost(ctx, model.BlogPost{
		UserID:    user.UserID,
		Title:     gofakeit.Sentence(5),
		Body:      gofakeit.Paragraph(3, 4, 12, "\n\n"),
		Tags:      strings.Join([]string{category, gofakeit.Word()}, ","),
		Published: gofakeit.Bool(),
	})
	if err != nil {
		return err
	}

	_, err = e.elevion.SaveDraftPost(ctx, user.UserID, gofakeit.Sentence(10))
	if err != nil {
		return err
	}

	// A week of traffic so the engagement summary has something to report.
	for d := 1; d <= 7; d++ {
		day := time.Now().AddDate(0, 0, -d)
		views := int64(gofakeit.Number(40, 600))
		_, err = e.elevion.RecordEngagement(ctx, model.EngagementMetric{
			UserID:     user.UserID,
			Day:        day,
			PageViews:  views,
			Visitors:   views / 2,
			BounceRate: gofakeit.Float64Range(0.2, 0.8),
		})
		if err != nil {
			return err
		}
	}

	return nil
}
