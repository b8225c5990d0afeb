package ingest

import "strings"

// Duplicates counts the records Dedupe dropped, per kind.
type Duplicates struct {
	Organizations int
	Events        int
	Resources     int
}

// Total is the number of dropped records.
func (d Duplicates) Total() int { return d.Organizations + d.Events + d.Resources }

// Dedupe keeps the first record per external id (EIN, Eventbrite id,
// CourtListener id). Records without an external id are always kept.
// Event owners pointing at a dropped organization are moved to the kept one.
func Dedupe(b Batch) (Batch, Duplicates) {
	var dup Duplicates
	out := Batch{}

	// remap[i] is the new index of input organization i.
	remap := make([]int, len(b.Organizations))
	seenOrg := make(map[string]int)
	for i, o := range b.Organizations {
		key := externalKey(o.EIN)
		if key != "" {
			if kept, ok := seenOrg[key]; ok {
				remap[i] = kept
				dup.Organizations++
				continue
			}
			seenOrg[key] = len(out.Organizations)
		}
		remap[i] = len(out.Organizations)
		out.Organizations = append(out.Organizations, o)
	}

	seenEvent := make(map[string]bool)
	for i, e := range b.Events {
		if key := externalKey(e.EventbriteID); key != "" {
			if seenEvent[key] {
				dup.Events++
				continue
			}
			seenEvent[key] = true
		}
		owner := -1
		if i < len(b.Owners) && b.Owners[i] >= 0 && b.Owners[i] < len(remap) {
			owner = remap[b.Owners[i]]
		}
		out.Events = append(out.Events, e)
		out.Owners = append(out.Owners, owner)
	}

	seenResource := make(map[string]bool)
	for _, r := range b.Resources {
		if key := externalKey(r.CourtListenerID); key != "" {
			if seenResource[key] {
				dup.Resources++
				continue
			}
			seenResource[key] = true
		}
		out.Resources = append(out.Resources, r)
	}
	return out, dup
}

func externalKey(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
