package catalog

import (
	"context"
	"time"

	"github.com/immigrow/catalog/internal/domain/record"
)

// OrganizationReader reads organizations. List returns ascending id order.
type OrganizationReader interface {
	ListOrganizations(ctx context.Context) ([]record.Organization, error)
	GetOrganization(ctx context.Context, id int64) (record.Organization, error)
	OrganizationsByID(ctx context.Context, ids []int64) ([]record.Organization, error)
}

// EventReader reads events. List returns ascending id order.
type EventReader interface {
	ListEvents(ctx context.Context) ([]record.Event, error)
	GetEvent(ctx context.Context, id int64) (record.Event, error)
	EventsByID(ctx context.Context, ids []int64) ([]record.Event, error)
	EventsByOrganization(ctx context.Context, orgID int64) ([]record.Event, error)
}

// ResourceReader reads resources. List returns ascending id order.
type ResourceReader interface {
	ListResources(ctx context.Context) ([]record.Resource, error)
	GetResource(ctx context.Context, id int64) (record.Resource, error)
	ResourcesByID(ctx context.Context, ids []int64) ([]record.Resource, error)
}

// LinkReader resolves association sets in one batched call. The result maps
// each requested id to the ids on the opposite side, ascending.
type LinkReader interface {
	Linked(ctx context.Context, set record.LinkSet, side record.Side, ids []int64) (map[int64][]int64, error)
}

// Repository is the read contract both storage backends implement.
type Repository interface {
	OrganizationReader
	EventReader
	ResourceReader
	LinkReader
}

// Recorder observes list pipeline executions.
type Recorder interface {
	ObserveQuery(entity, mode string, elapsed time.Duration, total int)
	ObserveQueryError(entity string)
}
