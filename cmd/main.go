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
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	elevion "github.com/elevionhq/elevion"
	"github.com/elevionhq/elevion/config"
	"github.com/elevionhq/elevion/database"
	"github.com/elevionhq/elevion/internal/notification"
)

// CLI wraps the root cobra command for the elevion binary.
type CLI struct {
	cmd *cobra.Command
}

// elevionInstance carries the initialized application and its configuration
// into the subcommands.
type elevionInstance struct {
	elevion *elevion.Elevion
	cnf     *config.Configuration
}

// recoverPanic logs any panic during command execution and exits non-zero.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads configuration and builds the Elevion instance before any
// subcommand runs.
func preRun(app *elevionInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("elevion.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newElevion, err := setupElevion(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.elevion = newElevion
		app.cnf = cnf

		return nil
	}
}

// setupElevion connects the datasource and wires the application services.
func setupElevion(cfg *config.Configuration) (*elevion.Elevion, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %v", err)
	}

	newElevion, err := elevion.NewElevion(db)
	if err != nil {
		return nil, fmt.Errorf("error creating elevion: %v", err)
	}
	return newElevion, nil
}

// NewCLI builds the command tree: server, workers, migrations and demo data.
func NewCLI() *CLI {
	var configFile string
	e := &elevionInstance{}

	var rootCmd = &cobra.Command{
		Use:   "elevion",
		Short: "AI-assisted commerce backend for small businesses",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./elevion.json", "Configuration file for elevion")

	rootCmd.PersistentPreRunE = preRun(e)

	rootCmd.AddCommand(serverCommands(e))
	rootCmd.AddCommand(workerCommands(e))
	rootCmd.AddCommand(migrateCommands(e))
	rootCmd.AddCommand(seedCommands(e))

	return &CLI{cmd: rootCmd}
}

func (w CLI) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
