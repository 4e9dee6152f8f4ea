// Package logger provides structured logging for tripclient using zerolog.
//
// The API client logs classification details (raw error bodies, schema
// issues, unexpected failures) through this package; those details never
// reach APIError messages.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "tripctl").WithComponent("apiclient")
//	log.Info("request completed", logger.Fields("status", 200))
package logger
