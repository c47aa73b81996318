// Package log provides the logging abstraction used by wxship components.
//
// It defines a Logger interface that can be implemented by any logging
// library. A zerolog adapter and a no-op logger are provided.
//
// The worker and service never hold package-level logging state; a Logger is
// injected at construction, so hosts embedding wxship can route its output
// through their own infrastructure:
//
//	logger := log.NewZerologAdapter()
//	svc, err := wxship.New(cfg, wxship.WithLogger(logger))
package log
