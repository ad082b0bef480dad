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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT = "5000"

	// DEFAULT_GROK_BASE_URL is the OpenAI-compatible endpoint of the xAI API.
	DEFAULT_GROK_BASE_URL = "https://api.x.ai/v1"
	DEFAULT_GROK_MODEL    = "grok-2-1212"
)

var ConfigStore atomic.Value

type ServerConfig struct {
	SSL       bool   `json:"ssl" envconfig:"ELEVION_SERVER_SSL"`
	Secure    bool   `json:"secure" envconfig:"ELEVION_SERVER_SECURE"`
	SecretKey string `json:"secret_key" envconfig:"ELEVION_SERVER_SECRET_KEY"`
	Domain    string `json:"domain" envconfig:"ELEVION_SERVER_SSL_DOMAIN"`
	Email     string `json:"ssl_email" envconfig:"ELEVION_SERVER_SSL_EMAIL"`
	Port      string `json:"port" envconfig:"ELEVION_SERVER_PORT"`
}

type DataSourceConfig struct {
	Dns string `json:"dns" envconfig:"ELEVION_DATA_SOURCE_DNS"`
}

type RedisConfig struct {
	Dns           string `json:"dns" envconfig:"ELEVION_REDIS_DNS"`
	SkipTLSVerify bool   `json:"skip_tls_verify" envconfig:"ELEVION_REDIS_SKIP_TLS_VERIFY"`
}

type TypeSenseConfig struct {
	Dns string `json:"dns" envconfig:"ELEVION_TYPESENSE_DNS"`
}

// GrokConfig configures the xAI language-model client. Every AI-backed
// feature degrades to a static fallback when the key is missing or calls fail,
// so none of these fields are required.
type GrokConfig struct {
	BaseUrl    string `json:"base_url" envconfig:"ELEVION_GROK_BASE_URL"`
	ApiKey     string `json:"api_key" envconfig:"XAI_API_KEY"`
	Model      string `json:"model" envconfig:"ELEVION_GROK_MODEL"`
	TimeoutSec int    `json:"timeout_sec" envconfig:"ELEVION_GROK_TIMEOUT_SEC"`
	Retries    int    `json:"retries" envconfig:"ELEVION_GROK_RETRIES"`
}

type StripeConfig struct {
	SecretKey      string `json:"secret_key" envconfig:"STRIPE_SECRET_KEY"`
	PublishableKey string `json:"publishable_key" envconfig:"STRIPE_PUBLISHABLE_KEY"`
}

type TwitterConfig struct {
	ApiKey       string `json:"api_key" envconfig:"TWITTER_API_KEY"`
	ApiSecret    string `json:"api_secret" envconfig:"TWITTER_API_SECRET"`
	AccessToken  string `json:"access_token" envconfig:"TWITTER_ACCESS_TOKEN"`
	AccessSecret string `json:"access_secret" envconfig:"TWITTER_ACCESS_SECRET"`
}

type QueueConfig struct {
	SocialDispatchQueue string `json:"social_dispatch_queue" envconfig:"ELEVION_QUEUE_SOCIAL_DISPATCH"`
	IndexQueue          string `json:"index_queue" envconfig:"ELEVION_QUEUE_INDEX"`
	MonitoringPort      string `json:"monitoring_port" envconfig:"ELEVION_QUEUE_MONITORING_PORT"`
	MaxRetryAttempts    int    `json:"max_retry_attempts" envconfig:"ELEVION_QUEUE_MAX_RETRY_ATTEMPTS"`
}

type RateLimitConfig struct {
	RequestsPerSecond  *float64 `json:"requests_per_second" envconfig:"ELEVION_RATE_LIMIT_RPS"`
	Burst              *int     `json:"burst" envconfig:"ELEVION_RATE_LIMIT_BURST"`
	CleanupIntervalSec *int     `json:"cleanup_interval_sec" envconfig:"ELEVION_RATE_LIMIT_CLEANUP_INTERVAL_SEC"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url"`
}

type Notification struct {
	Slack   SlackWebhook `json:"slack"`
	Webhook struct {
		Url     string            `json:"url"`
		Headers map[string]string `json:"headers"`
	} `json:"webhook"`
}

type Configuration struct {
	ProjectName     string           `json:"project_name" envconfig:"ELEVION_PROJECT_NAME"`
	EnableTelemetry bool             `json:"enable_telemetry" envconfig:"ELEVION_ENABLE_TELEMETRY"`
	Server          ServerConfig     `json:"server"`
	DataSource      DataSourceConfig `json:"data_source"`
	Redis           RedisConfig      `json:"redis"`
	TypeSense       TypeSenseConfig  `json:"typesense"`
	TypeSenseKey    string           `json:"type_sense_key" envconfig:"ELEVION_TYPESENSE_KEY"`
	Grok            GrokConfig       `json:"grok"`
	Stripe          StripeConfig     `json:"stripe"`
	Twitter         TwitterConfig    `json:"twitter"`
	Queue           QueueConfig      `json:"queue"`
	Notification    Notification     `json:"notification"`
	RateLimit       RateLimitConfig  `json:"rate_limit"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("elevion", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called elevion.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Elevion Server"
	}

	if cnf.DataSource.Dns == "" {
		log.Println("Error: Data source DNS is empty. It's a required field.")
		return errors.New("data source DNS is required")
	}

	if cnf.Redis.Dns == "" {
		log.Println("Error: Redis DNS is empty. It's a required field.")
		return errors.New("redis DNS is required")
	}

	if cnf.TypeSense.Dns == "" {
		cnf.TypeSense.Dns = "http://typesense:8108"
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)

	// Set default value for Port if it's empty
	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.Grok.BaseUrl == "" {
		cnf.Grok.BaseUrl = DEFAULT_GROK_BASE_URL
	}
	if cnf.Grok.Model == "" {
		cnf.Grok.Model = DEFAULT_GROK_MODEL
	}
	if cnf.Grok.TimeoutSec <= 0 {
		cnf.Grok.TimeoutSec = 30
	}
	if cnf.Grok.Retries < 0 {
		cnf.Grok.Retries = 0
	}
	if cnf.Grok.ApiKey == "" {
		log.Println("Warning: Grok API key not set. AI features will serve fallback content.")
	}

	if cnf.Queue.SocialDispatchQueue == "" {
		cnf.Queue.SocialDispatchQueue = "new:social_dispatch"
	}
	if cnf.Queue.IndexQueue == "" {
		cnf.Queue.IndexQueue = "new:index"
	}
	if cnf.Queue.MonitoringPort == "" {
		cnf.Queue.MonitoringPort = "5003"
	}
	if cnf.Queue.MaxRetryAttempts <= 0 {
		cnf.Queue.MaxRetryAttempts = 3
	}

	// Rate limiting is disabled by default (when both RPS and Burst are nil)
	if cnf.RateLimit.RequestsPerSecond != nil && cnf.RateLimit.Burst == nil {
		defaultBurst := 2 * int(*cnf.RateLimit.RequestsPerSecond)
		cnf.RateLimit.Burst = &defaultBurst
		log.Printf("Warning: Rate limit burst not specified. Setting default value: %d", defaultBurst)
	}
	if cnf.RateLimit.RequestsPerSecond == nil && cnf.RateLimit.Burst != nil {
		defaultRPS := float64(*cnf.RateLimit.Burst) / 2
		cnf.RateLimit.RequestsPerSecond = &defaultRPS
		log.Printf("Warning: Rate limit RPS not specified. Setting default value: %.2f", defaultRPS)
	}

	if cnf.RateLimit.CleanupIntervalSec == nil {
		defaultCleanup := 10800 // 3 hours in seconds
		cnf.RateLimit.CleanupIntervalSec = &defaultCleanup
		log.Printf("Warning: Rate limit cleanup interval not specified. Setting default value: %d seconds", defaultCleanup)
	}

	return nil
}

// MissingTwitterCredentials returns the names of the Twitter credential
// environment variables that are not set. An empty slice means posting is
// fully configured.
func (cnf *Configuration) MissingTwitterCredentials() []string {
	missing := []string{}
	if cnf.Twitter.ApiKey == "" {
		missing = append(missing, "TWITTER_API_KEY")
	}
	if cnf.Twitter.ApiSecret == "" {
		missing = append(missing, "TWITTER_API_SECRET")
	}
	if cnf.Twitter.AccessToken == "" {
		missing = append(missing, "TWITTER_ACCESS_TOKEN")
	}
	if cnf.Twitter.AccessSecret == "" {
		missing = append(missing, "TWITTER_ACCESS_SECRET")
	}
	return missing
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
