// Package wxship uploads weather-station archive records to WindFinder.
//
// Example usage:
//
//	cfg := wxship.DefaultConfig()
//	cfg.StationID = "KXYZ123"
//	cfg.Password = "hunter2"
//	svc, err := wxship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := svc.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Stop()
//	svc.OnNewRecord(rec)
package wxship

import (
	lib "github.com/wx-labs/wxship/pkg/wxship"
)

// Config holds the configuration for the upload service.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = lib.Config

// Service is a background delivery worker for archive records.
type Service = lib.Service

// Record is a single timestamped set of sensor observations.
type Record = lib.Record

// Option configures optional service dependencies.
type Option = lib.Option

// New builds a Service from the configuration. The service does not
// upload anything until Start is called.
func New(cfg Config, opts ...Option) (*Service, error) {
	return lib.New(cfg, opts...)
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, you must set StationID and Password before calling New.
func DefaultConfig() Config {
	return lib.DefaultConfig()
}

// WithLogger injects a structured logger into the service.
var WithLogger = lib.WithLogger

// WithHTTPClient overrides the HTTP client used for uploads.
var WithHTTPClient = lib.WithHTTPClient

// WithEventHandler registers a handler for state and delivery events.
var WithEventHandler = lib.WithEventHandler

// DefaultServerURL is the well-known WindFinder upload endpoint.
const DefaultServerURL = lib.DefaultServerURL
