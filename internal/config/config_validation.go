// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied by [StructuredConfig.applyDefaults] to fields left empty
// by every source.
const (
	DefaultTokenIssuer     = "go-tyre-shop"
	DefaultTokenDuration   = 24 * time.Hour
	DefaultRequestTimeout  = 30 * time.Second
	DefaultMaxOpenConns    = 20
	DefaultRedisTTL        = 10 * time.Minute
	DefaultKafkaTopic      = "tyre-shop.events"
	DefaultJanitorSchedule = "@every 1h"
	DefaultJanitorMaxAge   = 6 * time.Hour
	DefaultRetryAttempts   = 3
	DefaultRetryBackoff    = 50 * time.Millisecond
	DefaultLogLevel        = "info"
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}

	if cfg.Storage.DB.MaxOpenConns == 0 {
		cfg.Storage.DB.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.Storage.Redis.TTL == 0 {
		cfg.Storage.Redis.TTL = DefaultRedisTTL
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.Adapter.Kafka.Topic == "" {
		cfg.Adapter.Kafka.Topic = DefaultKafkaTopic
	}

	if cfg.Workers.UploadDir == "" {
		cfg.Workers.UploadDir = filepath.Join(os.TempDir(), "tyre-shop-uploads")
	}
	if cfg.Workers.JanitorSchedule == "" {
		cfg.Workers.JanitorSchedule = DefaultJanitorSchedule
	}
	if cfg.Workers.JanitorMaxAge == 0 {
		cfg.Workers.JanitorMaxAge = DefaultJanitorMaxAge
	}
	if cfg.Workers.RetryAttempts == 0 {
		cfg.Workers.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.Workers.RetryBackoff == 0 {
		cfg.Workers.RetryBackoff = DefaultRetryBackoff
	}
}

// validate checks that the final merged [StructuredConfig] carries
// everything the server cannot start without.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: HTTP address is required", ErrInvalidServerConfigs)
	}

	cld := cfg.Adapter.Cloudinary
	if cld.CloudName != "" && (cld.APIKey == "" || cld.APISecret == "") {
		return fmt.Errorf("%w: cloudinary needs both api key and secret", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.RetryAttempts > 10 {
		return fmt.Errorf("%w: retry attempts must not exceed 10", ErrInvalidWorkerConfigs)
	}

	return nil
}
