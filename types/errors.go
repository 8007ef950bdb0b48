package types

import (
	"errors"
	"strconv"
)

// Sentinel errors for common failure scenarios.
var (
	// ErrNoShards indicates the registry holds no shards even after a
	// fresh reload. Returned by consumers that require at least one shard.
	ErrNoShards = errors.New("shardgrid: no shards registered")

	// ErrShardNotFound is wrapped by ConsistencyError and allows callers
	// to test for the "still missing after reload" condition with errors.Is.
	ErrShardNotFound = errors.New("shardgrid: shard not found")
)

// ParseError indicates that a connection string or identifier does not
// parse. It is fatal at any call boundary that requires a well-formed
// descriptor.
type ParseError struct {
	// Input is the raw string that failed to parse.
	Input string

	// Reason describes what was malformed.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "shardgrid: invalid connection string " + strconv.Quote(e.Input) + ": " + e.Reason
}

// ValidationError indicates that a raw shard descriptor received from the
// authoritative config source is malformed. A single ValidationError aborts
// the entire reload with no partial mutation.
type ValidationError struct {
	// Name is the shard name from the offending descriptor (may be empty).
	Name string

	// Cause is the underlying validation failure.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "shardgrid: invalid shard descriptor " + strconv.Quote(e.Name) + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// ConsistencyError indicates that a retried lookup still missed after a
// fresh reload. This signals a caller or data-model bug rather than
// transient staleness, and is treated as fatal.
type ConsistencyError struct {
	// Ident is the identifier that could not be resolved.
	Ident string
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	return "shardgrid: no shard found for " + strconv.Quote(e.Ident) + " after reload"
}

// Unwrap allows errors.Is(err, ErrShardNotFound).
func (e *ConsistencyError) Unwrap() error {
	return ErrShardNotFound
}

// ShardError wraps a failure from a remote call against a specific shard
// or host. Transport failures are propagated as fatal to the immediate
// caller with no silent retry.
type ShardError struct {
	// Host is the address the remote call targeted.
	Host string

	// Op describes what operation failed (e.g. "listDatabases").
	Op string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ShardError) Error() string {
	return "shardgrid: " + e.Op + " on " + e.Host + " failed: " + e.Cause.Error()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ShardError) Unwrap() error {
	return e.Cause
}
