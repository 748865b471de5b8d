// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, first match
// wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/recsys/config.yaml",
	"/etc/recsys/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "RECSYS_CONFIG_PATH"

// Load builds the configuration from layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file path, or empty.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config
// paths. Unmapped variables are skipped so unrelated environment noise
// never pollutes the config.
func envTransformFunc(key string) string {
	mappings := map[string]string{
		// Server
		"HTTP_HOST":             "server.host",
		"HTTP_PORT":             "server.port",
		"HTTP_READ_TIMEOUT":     "server.read_timeout",
		"HTTP_WRITE_TIMEOUT":    "server.write_timeout",
		"HTTP_SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
		"RATE_LIMIT_REQUESTS":   "server.rate_limit_reqs",
		"RATE_LIMIT_WINDOW":     "server.rate_limit_window",

		// Database
		"DUCKDB_PATH":       "database.path",
		"DUCKDB_MAX_MEMORY": "database.max_memory",

		// Logging
		"LOG_LEVEL":  "logging.level",
		"LOG_FORMAT": "logging.format",
		"LOG_CALLER": "logging.caller",

		// Recommendation engine
		"RECOMMEND_WEIGHT_TEXT":        "recommend.content.text",
		"RECOMMEND_WEIGHT_CATEGORY":    "recommend.content.category",
		"RECOMMEND_WEIGHT_SUBCATEGORY": "recommend.content.subcategory",
		"RECOMMEND_WEIGHT_PRICE":       "recommend.content.price",
		"RECOMMEND_WEIGHT_RATING":      "recommend.content.rating",
		"RECOMMEND_BLEND_CONTENT":      "recommend.blend.content",
		"RECOMMEND_BLEND_COLLAB":       "recommend.blend.collaborative",
		"RECOMMEND_MIN_SIMILARITY":     "recommend.collaborative.min_similarity",
		"RECOMMEND_DEFAULT_LIMIT":      "recommend.limits.default_limit",
		"RECOMMEND_MAX_LIMIT":          "recommend.limits.max_limit",

		// Rebuild service
		"REBUILD_ENABLED":  "rebuild.enabled",
		"REBUILD_INTERVAL": "rebuild.interval",
	}

	if mapped, ok := mappings[strings.ToUpper(key)]; ok {
		return mapped
	}
	return ""
}
