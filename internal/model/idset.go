package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// MemberIDs is an ordered set of team member IDs stored as a JSON array.
type MemberIDs []int64

// GroupIDs is an ordered set of opaque group identifiers stored as a JSON array.
type GroupIDs []string

// NewGroupID mints a fresh group identifier.
func NewGroupID() string {
	return uuid.New().String()
}

// Value writes the set as a JSON array, or NULL when empty.
func (m MemberIDs) Value() (driver.Value, error) {
	ids := m.Dedup()
	if len(ids) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]int64(ids))
	if err != nil {
		return nil, fmt.Errorf("marshaling member ids: %w", err)
	}
	return string(b), nil
}

// Scan reads a JSON array. Malformed content reads as an empty set.
func (m *MemberIDs) Scan(src any) error {
	var ids []int64
	if !decodeSet(src, &ids) {
		*m = nil
		return nil
	}
	*m = ids
	return nil
}

// Dedup returns the set with duplicates removed, preserving first occurrence.
func (m MemberIDs) Dedup() MemberIDs {
	if len(m) == 0 {
		return nil
	}
	seen := make(map[int64]bool, len(m))
	out := make(MemberIDs, 0, len(m))
	for _, id := range m {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Contains reports whether id is in the set.
func (m MemberIDs) Contains(id int64) bool {
	for _, v := range m {
		if v == id {
			return true
		}
	}
	return false
}

// Value writes the set as a JSON array, or NULL when empty.
func (g GroupIDs) Value() (driver.Value, error) {
	ids := g.Dedup()
	if len(ids) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(ids))
	if err != nil {
		return nil, fmt.Errorf("marshaling group ids: %w", err)
	}
	return string(b), nil
}

// Scan reads a JSON array. Malformed content reads as an empty set.
func (g *GroupIDs) Scan(src any) error {
	var ids []string
	if !decodeSet(src, &ids) {
		*g = nil
		return nil
	}
	*g = ids
	return nil
}

// Dedup returns the set with duplicates and empty identifiers removed.
func (g GroupIDs) Dedup() GroupIDs {
	if len(g) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(g))
	out := make(GroupIDs, 0, len(g))
	for _, id := range g {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Intersects reports whether any identifier in other is also in g.
func (g GroupIDs) Intersects(other []string) bool {
	if len(g) == 0 || len(other) == 0 {
		return false
	}
	set := make(map[string]bool, len(g))
	for _, id := range g {
		set[id] = true
	}
	for _, id := range other {
		if set[id] {
			return true
		}
	}
	return false
}

// decodeSet unmarshals a TEXT/BLOB column into dst. It reports false for
// NULL, empty and malformed input.
func decodeSet(src any, dst any) bool {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return false
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return false
	}
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
