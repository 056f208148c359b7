// Package diff computes structural differences between id-keyed maps.
//
// Equality is structural: values are canonicalized through JSON
// (marshal, unmarshal into any, marshal again), so map key order and
// numeric representation never register as changes. The same engine
// serves MCP server maps and skill file maps.
package diff

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/thoreinstein/prism/internal/errors"
)

// Result partitions the combined id space of two maps.
type Result struct {
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Changed   []string `json:"changed"`
	Unchanged int      `json:"unchanged"`
}

// Empty reports whether the diff carries no changes.
func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Count returns the number of ids that differ.
func (r Result) Count() int {
	return len(r.Added) + len(r.Removed) + len(r.Changed)
}

// Maps diffs desired against current: Added ids exist only in desired,
// Removed only in current, Changed in both but structurally different.
// All id lists come back sorted.
func Maps[V any](current, desired map[string]V) (Result, error) {
	var res Result

	for id, cur := range current {
		des, ok := desired[id]
		if !ok {
			res.Removed = append(res.Removed, id)
			continue
		}
		same, err := Equal(cur, des)
		if err != nil {
			return Result{}, errors.Wrapf(err, "comparing %q", id)
		}
		if same {
			res.Unchanged++
		} else {
			res.Changed = append(res.Changed, id)
		}
	}

	for id := range desired {
		if _, ok := current[id]; !ok {
			res.Added = append(res.Added, id)
		}
	}

	sort.Strings(res.Added)
	sort.Strings(res.Removed)
	sort.Strings(res.Changed)
	return res, nil
}

// Equal reports structural equality of two values through JSON
// canonicalization.
func Equal(a, b any) (bool, error) {
	ca, err := canonical(a)
	if err != nil {
		return false, err
	}
	cb, err := canonical(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ca, cb), nil
}

// canonical renders v as deterministic JSON. The round trip through any
// flattens typed values (struct fields, int vs float) into the shape a
// parsed document would have; encoding/json then emits object keys in
// sorted order.
func canonical(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling value")
	}
	var tmp any
	if err := json.Unmarshal(raw, &tmp); err != nil {
		return nil, errors.Wrap(err, "round-tripping value")
	}
	return json.Marshal(tmp)
}
