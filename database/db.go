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

package database

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/elevionhq/elevion/config"
	"github.com/elevionhq/elevion/model"
)

// Datasource is the ORM-backed storage façade. All persistence flows through
// its named methods; handlers never touch gorm directly.
type Datasource struct {
	Conn *gorm.DB
}

var (
	instance *Datasource
	once     sync.Once
)

// NewDataSource opens the relational store described by the configuration
// DSN. Postgres is the production driver; a plain file path (or :memory:)
// opens sqlite, which the test suite uses.
func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := connect(configuration.DataSource.Dns)
	if err != nil {
		return nil, fmt.Errorf("error connecting to datasource: %w", err)
	}
	return &Datasource{Conn: con}, nil
}

// GetDBConnection returns a process-wide datasource, opening it on first use.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	var err error
	once.Do(func() {
		con, cerr := connect(configuration.DataSource.Dns)
		if cerr != nil {
			err = cerr
			return
		}
		instance = &Datasource{Conn: con}
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func connect(dns string) (*gorm.DB, error) {
	opts := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	if strings.HasPrefix(dns, "postgres://") || strings.HasPrefix(dns, "postgresql://") {
		return gorm.Open(postgres.Open(dns), opts)
	}
	return gorm.Open(sqlite.Open(dns), opts)
}

// Migrate creates or updates the relational schema for every entity.
func (d *Datasource) Migrate() error {
	return d.Conn.AutoMigrate(
		&model.User{},
		&model.MarketplaceItem{},
		&model.Order{},
		&model.Subscription{},
		&model.Advertisement{},
		&model.ScheduledPost{},
		&model.BlogPost{},
		&model.EngagementMetric{},
	)
}
