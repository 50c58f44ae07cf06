package conflict

import (
	"fmt"
)

// Result maps each checked group to the clusters found inside it. Groups that
// were checked but produced nothing are kept so callers can tell them apart
// from groups that were never checked.
type Result[K comparable] struct {
	groups map[K]ClusterSet
}

func newResult[K comparable](size int) *Result[K] {
	return &Result[K]{groups: make(map[K]ClusterSet, size)}
}

// Clusters returns the clusters for key or ErrGroupNotChecked.
func (r *Result[K]) Clusters(key K) (ClusterSet, error) {
	if r != nil {
		if set, ok := r.groups[key]; ok {
			return set, nil
		}
	}
	return ClusterSet{}, fmt.Errorf("%w: %v", ErrGroupNotChecked, key)
}

// Checked reports whether key was evaluated.
func (r *Result[K]) Checked(key K) bool {
	if r == nil {
		return false
	}
	_, ok := r.groups[key]
	return ok
}

// Keys returns every checked key in unspecified order.
func (r *Result[K]) Keys() []K {
	if r == nil {
		return nil
	}
	keys := make([]K, 0, len(r.groups))
	for k := range r.groups {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of checked groups.
func (r *Result[K]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.groups)
}

// Conflicting returns only the groups with at least one cluster.
func (r *Result[K]) Conflicting() map[K]ClusterSet {
	out := make(map[K]ClusterSet)
	if r == nil {
		return out
	}
	for k, set := range r.groups {
		if !set.Empty() {
			out[k] = set
		}
	}
	return out
}

// ClusterCount sums clusters across groups.
func (r *Result[K]) ClusterCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, set := range r.groups {
		total += set.Len()
	}
	return total
}
