// Package store loads biography records into database sinks.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppiankov/wikibio/internal/model"
)

// ErrUnknownSink is returned for an unsupported sink name
var ErrUnknownSink = errors.New("unknown sink")

// Sink is a database destination for records
type Sink interface {
	// Name identifies the sink for logging and rate limiting
	Name() string

	// Insert writes one batch of records
	Insert(ctx context.Context, records []model.Record) error

	// Close releases the connection
	Close() error
}

// Open connects to the sink named in the load configuration
func Open(ctx context.Context, cfg model.LoadConfig, schema model.Schema) (Sink, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%s sink: no dsn configured", cfg.Sink)
	}

	switch cfg.Sink {
	case "postgres":
		return OpenPostgres(ctx, cfg.DSN, cfg.Table, schema)
	case "mongo":
		return DialMongo(cfg.DSN, cfg.Database, cfg.Table, schema)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, cfg.Sink)
	}
}
