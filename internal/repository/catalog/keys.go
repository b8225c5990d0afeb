package catalog

import (
	"strconv"

	"github.com/immigrow/catalog/internal/domain/record"
)

func (r *Repo) recordKey(kind record.Kind, id int64) string {
	return r.prefix + string(kind) + ":" + strconv.FormatInt(id, 10)
}

func (r *Repo) idsKey(kind record.Kind) string {
	return r.prefix + string(kind) + ":ids"
}

func (r *Repo) ownerKey(orgID int64) string {
	return r.recordKey(record.KindOrganization, orgID) + ":events"
}

// linkKey names the set of ids linked to id on the given side of set, e.g.
// "immigrow:link:event_resources:event:3".
func (r *Repo) linkKey(set record.LinkSet, side record.Side, id int64) string {
	kind := set.LeftKind()
	if side == record.Right {
		kind = record.KindResource
	}
	return r.prefix + "link:" + string(set) + ":" + string(kind) + ":" + strconv.FormatInt(id, 10)
}
