package graph

import (
	"context"
	"errors"
)

// Client is the narrow cypher contract the person repository depends on.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result holds the records produced by a cypher statement.
type Result struct {
	Records []Record
}

// Record maps returned column names to values.
type Record map[string]any

// String returns the column as a string, or "" when it is missing or not a string.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// OptionalString returns nil for missing and null columns.
func (r Record) OptionalString(key string) *string {
	v, ok := r[key].(string)
	if !ok {
		return nil
	}
	return &v
}

// Options configures the Neo4j backed client.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
