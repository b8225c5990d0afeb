package ingest

import (
	"strings"

	"github.com/immigrow/catalog/internal/domain/record"
)

// DefaultMinLinks is the minimum number of associations per record after backfill.
const DefaultMinLinks = 1

// candidateResources bounds how many resources each record is matched against.
const candidateResources = 5

// immigrationKeywords link an event to a resource when found in either title.
var immigrationKeywords = []string{"immigration", "asylum", "citizenship", "visa", "daca"}

// Link derives the association pairs for a dataset whose ids are assigned.
// Keyword and topic matches come first, then every record with fewer than
// minLinks associations is backfilled round robin from the counterpart set.
func Link(ds *record.Dataset, minLinks int) []record.Link {
	candidates := ds.Resources
	if len(candidates) > candidateResources {
		candidates = candidates[:candidateResources]
	}

	events := newPairs(record.EventResources)
	for i := range ds.Events {
		e := &ds.Events[i]
		for j := range candidates {
			if keywordMatch(e.Title, candidates[j].Title) {
				events.add(e.ID, candidates[j].ID)
			}
		}
	}

	orgs := newPairs(record.OrganizationResources)
	for i := range ds.Organizations {
		o := &ds.Organizations[i]
		for j := range candidates {
			if topicMatch(o.Topic, &candidates[j]) {
				orgs.add(o.ID, candidates[j].ID)
			}
		}
	}

	resourceIDs := idsOf(ds.Resources, func(r *record.Resource) int64 { return r.ID })
	events.backfill(idsOf(ds.Events, func(e *record.Event) int64 { return e.ID }), resourceIDs, minLinks)
	orgs.backfill(idsOf(ds.Organizations, func(o *record.Organization) int64 { return o.ID }), resourceIDs, minLinks)

	return append(events.links, orgs.links...)
}

func keywordMatch(eventTitle, resourceTitle string) bool {
	e, r := strings.ToLower(eventTitle), strings.ToLower(resourceTitle)
	for _, k := range immigrationKeywords {
		if strings.Contains(e, k) || strings.Contains(r, k) {
			return true
		}
	}
	return false
}

func topicMatch(orgTopic string, r *record.Resource) bool {
	t := strings.ToLower(strings.TrimSpace(orgTopic))
	if t == "" {
		return false
	}
	return strings.Contains(strings.ToLower(r.Topic), t) ||
		strings.Contains(strings.ToLower(r.Description), t)
}

type pairs struct {
	set    record.LinkSet
	seen   map[[2]int64]bool
	left   map[int64]int
	right  map[int64]int
	links  []record.Link
	cursor int
}

func newPairs(set record.LinkSet) *pairs {
	return &pairs{
		set:   set,
		seen:  make(map[[2]int64]bool),
		left:  make(map[int64]int),
		right: make(map[int64]int),
	}
}

func (p *pairs) add(l, r int64) bool {
	k := [2]int64{l, r}
	if p.seen[k] {
		return false
	}
	p.seen[k] = true
	p.left[l]++
	p.right[r]++
	p.links = append(p.links, record.Link{Set: p.set, Left: l, Right: r})
	return true
}

// backfill tops up both ends to minLinks, bounded by the size of the other side.
func (p *pairs) backfill(lefts, rights []int64, minLinks int) {
	if len(lefts) == 0 || len(rights) == 0 || minLinks <= 0 {
		return
	}
	for _, l := range lefts {
		want := min(minLinks, len(rights))
		for tries := 0; p.left[l] < want && tries < len(rights); tries++ {
			p.add(l, rights[p.cursor%len(rights)])
			p.cursor++
		}
	}
	p.cursor = 0
	for _, r := range rights {
		want := min(minLinks, len(lefts))
		for tries := 0; p.right[r] < want && tries < len(lefts); tries++ {
			p.add(lefts[p.cursor%len(lefts)], r)
			p.cursor++
		}
	}
}

func idsOf[T any](items []T, id func(*T) int64) []int64 {
	out := make([]int64, len(items))
	for i := range items {
		out[i] = id(&items[i])
	}
	return out
}
