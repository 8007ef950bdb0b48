// Package testutil provides testing utilities for the shardgrid project.
//
// It contains an embedded NATS server helper for exercising the NATS
// topology source, fake collaborator implementations (command runner,
// membership resolver) and a recording metrics collector for asserting
// on emitted metrics.
package testutil
