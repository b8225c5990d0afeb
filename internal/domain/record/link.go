package record

// LinkSet names a many-to-many association set.
type LinkSet string

const (
	// EventResources links events and resources.
	EventResources LinkSet = "event_resources"
	// OrganizationResources links organizations and resources.
	OrganizationResources LinkSet = "organization_resources"
)

// Side selects which end of an association set a lookup is keyed by.
type Side int

const (
	// Left is the event or organization end.
	Left Side = iota
	// Right is the resource end.
	Right
)

// Opposite returns the other end of the association.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// LeftKind returns the entity kind stored on the left end of the set.
func (l LinkSet) LeftKind() Kind {
	if l == EventResources {
		return KindEvent
	}
	return KindOrganization
}

// Link is a single (left id, right id) association pair.
type Link struct {
	Set   LinkSet
	Left  int64
	Right int64
}

// Dataset is a complete batch of records and associations ready to persist.
type Dataset struct {
	Organizations []Organization
	Events        []Event
	Resources     []Resource
	Links         []Link
}

// LinksOf returns the pairs that belong to the given set, without duplicates.
func (d *Dataset) LinksOf(set LinkSet) []Link {
	seen := make(map[[2]int64]bool)
	var out []Link
	for _, l := range d.Links {
		if l.Set != set {
			continue
		}
		k := [2]int64{l.Left, l.Right}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, l)
	}
	return out
}
