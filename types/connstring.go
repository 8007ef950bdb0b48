package types

import "strings"

// ConnStringKind identifies the shape of a connection descriptor.
type ConnStringKind int

const (
	// Single is a descriptor pointing at one host.
	Single ConnStringKind = iota
	// ReplicaSet is a descriptor pointing at a named replica set.
	ReplicaSet
)

// ConnString is a parsed connection descriptor for a shard.
//
// It is a tagged variant: either a single host, or a replica set with a
// set name and a member host list. The zero value is carried only by the
// EmptyShard sentinel and is not a valid descriptor.
//
// ConnString values are immutable by convention; Members must not be
// mutated after construction. Copy helpers return defensive copies.
type ConnString struct {
	// Kind selects between Single and ReplicaSet.
	Kind ConnStringKind

	// Host is the single host address. Only set when Kind == Single.
	Host string

	// SetName is the replica set name. Only set when Kind == ReplicaSet.
	SetName string

	// Members are the replica set member host addresses.
	// Only set when Kind == ReplicaSet.
	Members []string
}

// ParseConnString parses a raw address into a connection descriptor.
//
// The replica set syntax is "setName/host1,host2[,...]". Anything without
// a "/" separator is treated as a single host address.
//
// Parameters:
//   - raw: The address or connection string to parse
//
// Returns:
//   - ConnString: The parsed descriptor
//   - error: A *ParseError if raw is empty or syntactically invalid
func ParseConnString(raw string) (ConnString, error) {
	if raw == "" {
		return ConnString{}, &ParseError{Input: raw, Reason: "empty connection string"}
	}

	setName, rest, found := strings.Cut(raw, "/")
	if !found {
		if strings.Contains(raw, ",") {
			return ConnString{}, &ParseError{Input: raw, Reason: "host list requires a replica set name prefix"}
		}

		return ConnString{Kind: Single, Host: raw}, nil
	}

	if setName == "" {
		return ConnString{}, &ParseError{Input: raw, Reason: "empty replica set name"}
	}
	if rest == "" {
		return ConnString{}, &ParseError{Input: raw, Reason: "replica set has no members"}
	}
	if strings.Contains(rest, "/") {
		return ConnString{}, &ParseError{Input: raw, Reason: "unexpected second '/' separator"}
	}

	members := strings.Split(rest, ",")
	for _, m := range members {
		if m == "" {
			return ConnString{}, &ParseError{Input: raw, Reason: "empty replica set member"}
		}
	}

	return ConnString{Kind: ReplicaSet, SetName: setName, Members: members}, nil
}

// IsReplicaSet returns true if the descriptor names a replica set.
func (cs ConnString) IsReplicaSet() bool {
	return cs.Kind == ReplicaSet
}

// IsZero returns true for the zero descriptor carried by EmptyShard.
func (cs ConnString) IsZero() bool {
	return cs.Kind == Single && cs.Host == ""
}

// String renders the descriptor back to its canonical connection string.
//
// Returns:
//   - string: "host" for Single, "setName/host1,host2" for ReplicaSet
func (cs ConnString) String() string {
	if cs.Kind == ReplicaSet {
		return cs.SetName + "/" + strings.Join(cs.Members, ",")
	}

	return cs.Host
}

// Clone returns a deep copy of the descriptor.
//
// Returns:
//   - ConnString: An independent copy whose Members slice is not shared
func (cs ConnString) Clone() ConnString {
	out := cs
	if len(cs.Members) > 0 {
		out.Members = make([]string, len(cs.Members))
		copy(out.Members, cs.Members)
	}

	return out
}
