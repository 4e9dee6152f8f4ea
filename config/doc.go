// Package config loads tripclient settings.
//
// Values come from a YAML file (config.yml), an optional .env file and
// TRIP_-prefixed environment variables, in increasing precedence:
//
//	cfg, err := config.Load()
//	client, err := apiclient.New(cfg.ClientConfig(version.UserAgent()))
//
// Environment variables map onto nested keys by underscore, so
// TRIP_API_BASE_URL sets api.base_url and TRIP_LOGGING_LEVEL sets
// logging.level.
package config
