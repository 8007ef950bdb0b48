package types

import "errors"

// Shard describes one shard's identity and connection descriptor.
//
// Shard values are immutable by convention: the registry hands out copies,
// and mutating a value already returned to a caller never affects the
// registry's own state.
type Shard struct {
	// Name is the cluster-unique shard name. Empty only for EmptyShard.
	Name string

	// ConnString is the parsed connection descriptor, derived
	// deterministically from the address the shard was constructed with.
	ConnString ConnString

	// MaxSizeMB is the shard's size quota; 0 means unbounded.
	MaxSizeMB int64

	// Draining marks a shard being decommissioned. Draining shards are
	// excluded from new placement but remain serviceable for existing data.
	Draining bool
}

// EmptyShard is the distinguished "no shard" result. It is unequal by name
// to every real shard record.
var EmptyShard = Shard{}

// NewShard constructs a shard record from a name and a raw address.
//
// The address is parsed as a replica set descriptor if it matches the
// "setName/host1,host2" syntax, otherwise it is treated as a single host.
//
// Parameters:
//   - name: The cluster-unique shard name
//   - addr: The address or connection string
//   - maxSizeMB: Size quota in megabytes (0 = unbounded)
//   - draining: Whether the shard is being decommissioned
//
// Returns:
//   - Shard: The constructed record
//   - error: A *ParseError if addr is not a well-formed connection string
func NewShard(name, addr string, maxSizeMB int64, draining bool) (Shard, error) {
	cs, err := ParseConnString(addr)
	if err != nil {
		return EmptyShard, err
	}

	return Shard{Name: name, ConnString: cs, MaxSizeMB: maxSizeMB, Draining: draining}, nil
}

// IsEmpty reports whether the record is the EmptyShard sentinel.
// Comparison against the sentinel is by name only.
func (s Shard) IsEmpty() bool {
	return s.Name == ""
}

// Address returns the canonical connection string for the shard.
func (s Shard) Address() string {
	return s.ConnString.String()
}

// Clone returns an owned copy of the record.
//
// Returns:
//   - Shard: An independent copy sharing no mutable state
func (s Shard) Clone() Shard {
	out := s
	out.ConnString = s.ConnString.Clone()

	return out
}

// ContainsNode reports whether host is served by this shard.
//
// The host matches if it equals the shard's own address. For replica set
// shards, membership is delegated to the resolver. An unresolved set is a
// soft failure: ContainsNode returns false and emits a warning instead of
// an error, since the monitor for a known set may not be initialized yet.
//
// Parameters:
//   - host: The host address to test
//   - resolver: The replica set membership collaborator
//   - logger: Logger for the unresolved-set warning
//
// Returns:
//   - bool: true if host is this shard's address or a resolved member
func (s Shard) ContainsNode(host string, resolver MembershipResolver, logger Logger) bool {
	if s.Address() == host {
		return true
	}

	if !s.ConnString.IsReplicaSet() {
		return false
	}

	membership, ok := resolver.Resolve(s.ConnString.SetName)
	if !ok {
		logger.Warn("membership not found for a known shard",
			"set", s.ConnString.SetName,
			"shard", s.Name,
		)

		return false
	}

	return membership.Contains(host)
}

// MembershipResolver resolves replica set names to their live membership.
//
// The resolver is an external collaborator (typically backed by a replica
// set monitor); this library only consumes its membership query.
type MembershipResolver interface {
	// Resolve looks up the membership handle for a replica set.
	//
	// Parameters:
	//   - setName: The replica set name
	//
	// Returns:
	//   - Membership: The membership handle
	//   - bool: false if the set is unknown or not yet monitored
	Resolve(setName string) (Membership, bool)
}

// Membership answers host containment queries for one replica set.
type Membership interface {
	// Contains reports whether host is a member of the set.
	Contains(host string) bool
}

// RawShardDescriptor is one shard entry as listed by the authoritative
// config source, before validation.
type RawShardDescriptor struct {
	// Name is the shard name.
	Name string `json:"name" yaml:"name"`

	// Host is the raw address or connection string.
	Host string `json:"host" yaml:"host"`

	// MaxSizeMB is the size quota in megabytes; 0 means unbounded.
	MaxSizeMB int64 `json:"maxSizeMB,omitempty" yaml:"maxSizeMB,omitempty"`

	// Draining marks the shard as being decommissioned.
	Draining bool `json:"draining,omitempty" yaml:"draining,omitempty"`
}

// Validate checks the descriptor before it is accepted into the registry.
//
// Returns:
//   - error: A *ValidationError if the name is empty or the host does not
//     parse as a connection string, nil otherwise
func (d RawShardDescriptor) Validate() error {
	if d.Name == "" {
		return &ValidationError{Name: d.Name, Cause: errors.New("shard name is empty")}
	}
	if _, err := ParseConnString(d.Host); err != nil {
		return &ValidationError{Name: d.Name, Cause: err}
	}

	return nil
}

// Shard materializes the descriptor into a shard record.
// Validate must have succeeded first.
func (d RawShardDescriptor) Shard() (Shard, error) {
	return NewShard(d.Name, d.Host, d.MaxSizeMB, d.Draining)
}
