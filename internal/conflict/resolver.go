package conflict

import (
	"github.com/noah-isme/course-conflict-checker/internal/models"
)

// Resolve finds the overlap clusters among records in one dimension.
//
// Every interval of every record is used as a query against an index of all
// records' intervals. A query that hits two or more distinct records yields a
// cluster. Queries are independent, so a record meeting on Monday and Thursday
// can appear in one cluster per day with different partners.
func Resolve(records []*models.MeetingRecord, dim Dimension) (ClusterSet, error) {
	var set ClusterSet
	if len(records) < 2 {
		return set, nil
	}

	perRecord := make([][]Interval, len(records))
	var entries []Entry[*models.MeetingRecord]
	for i, r := range records {
		ivs, err := Intervals(r, dim)
		if err != nil {
			return ClusterSet{}, err
		}
		perRecord[i] = ivs
		for _, iv := range ivs {
			entries = append(entries, Entry[*models.MeetingRecord]{Interval: iv, Value: r})
		}
	}
	idx := NewIndex(entries)

	for i, ivs := range perRecord {
		for _, iv := range ivs {
			// identical intervals yield identical candidates; only the first
			// record holding iv queries it
			if same := idx.Exact(iv); len(same) > 0 && same[0] != records[i] {
				continue
			}
			if members := distinct(idx.Overlapping(iv)); len(members) > 1 {
				set.Add(newCluster(members))
			}
		}
	}
	return set, nil
}

func distinct(records []*models.MeetingRecord) []*models.MeetingRecord {
	if len(records) < 2 {
		return records
	}
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
