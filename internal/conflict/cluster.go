package conflict

import (
	"sort"
	"strings"

	"github.com/noah-isme/course-conflict-checker/internal/models"
)

const keySeparator = "\x1f"

// Cluster is a set of at least two records whose intervals overlap. Members
// are held in ID order so that equal sets share a key.
type Cluster struct {
	members []*models.MeetingRecord
	key     string
}

func newCluster(members []*models.MeetingRecord) Cluster {
	sorted := make([]*models.MeetingRecord, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	ids := make([]string, len(sorted))
	for i, m := range sorted {
		ids[i] = m.ID
	}
	return Cluster{members: sorted, key: strings.Join(ids, keySeparator)}
}

// Key identifies the member set independent of discovery order.
func (c Cluster) Key() string { return c.key }

// Len returns the number of members.
func (c Cluster) Len() int { return len(c.members) }

// IDs returns member IDs in ascending order.
func (c Cluster) IDs() []string {
	ids := make([]string, len(c.members))
	for i, m := range c.members {
		ids[i] = m.ID
	}
	return ids
}

// Members returns copies of the member records in ID order.
func (c Cluster) Members() []models.MeetingRecord {
	out := make([]models.MeetingRecord, len(c.members))
	for i, m := range c.members {
		out[i] = *m
	}
	return out
}

// Contains reports whether the record with id is a member.
func (c Cluster) Contains(id string) bool {
	i := sort.Search(len(c.members), func(i int) bool { return c.members[i].ID >= id })
	return i < len(c.members) && c.members[i].ID == id
}

// ClusterSet holds clusters keyed by member set. The zero value is empty and
// ready to use.
type ClusterSet struct {
	byKey map[string]Cluster
}

// Add inserts c unless an equal member set is already present. It reports
// whether the set grew.
func (s *ClusterSet) Add(c Cluster) bool {
	if s.byKey == nil {
		s.byKey = make(map[string]Cluster)
	}
	if _, ok := s.byKey[c.key]; ok {
		return false
	}
	s.byKey[c.key] = c
	return true
}

// Len returns the number of distinct clusters.
func (s ClusterSet) Len() int { return len(s.byKey) }

// Empty reports whether no cluster was found.
func (s ClusterSet) Empty() bool { return len(s.byKey) == 0 }

// Has reports whether a cluster with exactly these member IDs exists.
func (s ClusterSet) Has(ids ...string) bool {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	_, ok := s.byKey[strings.Join(sorted, keySeparator)]
	return ok
}

// Clusters returns the clusters ordered by key.
func (s ClusterSet) Clusters() []Cluster {
	out := make([]Cluster, 0, len(s.byKey))
	for _, c := range s.byKey {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// Equal compares member sets only.
func (s ClusterSet) Equal(o ClusterSet) bool {
	if len(s.byKey) != len(o.byKey) {
		return false
	}
	for k := range s.byKey {
		if _, ok := o.byKey[k]; !ok {
			return false
		}
	}
	return true
}
