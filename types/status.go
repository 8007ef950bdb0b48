package types

import "strconv"

// ShardStatus is a point-in-time snapshot of one shard's live load and
// reported server version, produced on demand for placement decisions.
// Statuses are never cached.
type ShardStatus struct {
	// Shard is the record the status was probed for.
	Shard Shard

	// DataSizeBytes is the shard's live data size in bytes.
	DataSizeBytes int64

	// Version is the server version string reported by the shard.
	Version string
}

// Less defines the total, deterministic placement ordering; the "lesser"
// status is the better placement target.
//
// Ordering: data size ascending, then version string ascending (prefer the
// shard that is not mid-upgrade to a newer version), then shard name
// ascending for determinism.
//
// Parameters:
//   - other: The status to compare against
//
// Returns:
//   - bool: true if the receiver orders strictly before other
func (s ShardStatus) Less(other ShardStatus) bool {
	if s.DataSizeBytes != other.DataSizeBytes {
		return s.DataSizeBytes < other.DataSizeBytes
	}
	if s.Version != other.Version {
		return s.Version < other.Version
	}

	return s.Shard.Name < other.Shard.Name
}

// String renders the status for diagnostic logging.
func (s ShardStatus) String() string {
	return "shard:" + s.Shard.Name +
		" dataSize:" + strconv.FormatInt(s.DataSizeBytes, 10) +
		" version:" + s.Version
}
