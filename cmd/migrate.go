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

/*
Package main provides the CLI commands for managing database schema in the
elevion application.
*/

package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/elevionhq/elevion/config"
	"github.com/elevionhq/elevion/database"
)

// migrateCommands creates the root command for migration-related operations.
func migrateCommands(_ *elevionInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "start elevion migration",
	}

	cmd.AddCommand(migrateUpCommands())

	return cmd
}

// migrateUpCommands creates the command that reconciles the database schema
// with the current models.
func migrateUpCommands() *cobra.Command {
	cmd := &cobra.Command{
		Use: "up",
		Run: func(cmd *cobra.Command, args []string) {
			cnf, err := config.Fetch()
			if err != nil {
				log.Printf("Error fetching config: %v", err)
				return
			}

			ds, err := database.GetDBConnection(cnf)
			if err != nil {
				log.Printf("Error connecting to database: %v", err)
				return
			}

			if err := ds.Migrate(); err != nil {
				log.Printf("Error migrating up: %v", err)
				return
			}
			fmt.Println("Schema migration complete!")
		},
	}

	return cmd
}
