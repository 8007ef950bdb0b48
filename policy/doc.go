// Package policy implements the load-aware shard placement policy.
//
// The Picker chooses a destination shard for new data by probing every
// non-draining candidate live and keeping the least status under a total,
// deterministic ordering: data size ascending, then version string
// ascending, then shard name. Seeding from the caller's current shard
// means a different shard is chosen only when it is strictly better.
//
// Probes run concurrently and the selection is fail-fast: one unreachable
// candidate aborts the whole pick. Callers that want best-effort placement
// must filter their source instead.
//
// # Usage
//
//	picker := policy.NewPicker(registry, prober,
//	    policy.WithPickerLogger(logger),
//	)
//
//	target, err := picker.Pick(ctx, types.EmptyShard)
//	if err != nil {
//	    return err
//	}
//	if target.IsEmpty() {
//	    return errors.New("no shard eligible for placement")
//	}
package policy
