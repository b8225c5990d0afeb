// Package sqlcatalog implements the catalog repository over PostgreSQL with gorm.
package sqlcatalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/immigrow/catalog/internal/domain"
	"github.com/immigrow/catalog/internal/domain/record"
)

// batchSize bounds the rows per INSERT statement.
const batchSize = 500

// Repo implements usecase/catalog.Repository and usecase/ingest.Writer.
type Repo struct {
	db *gorm.DB
}

// New creates a relational catalog repository.
func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListOrganizations(ctx context.Context) ([]record.Organization, error) {
	return list[Organization](ctx, r.db, (*Organization).toRecord)
}

func (r *Repo) GetOrganization(ctx context.Context, id int64) (record.Organization, error) {
	return get[Organization](ctx, r.db, record.KindOrganization, id, (*Organization).toRecord)
}

func (r *Repo) OrganizationsByID(ctx context.Context, ids []int64) ([]record.Organization, error) {
	return byIDs[Organization](ctx, r.db, ids, (*Organization).toRecord)
}

func (r *Repo) ListEvents(ctx context.Context) ([]record.Event, error) {
	return list[Event](ctx, r.db, (*Event).toRecord)
}

func (r *Repo) GetEvent(ctx context.Context, id int64) (record.Event, error) {
	return get[Event](ctx, r.db, record.KindEvent, id, (*Event).toRecord)
}

func (r *Repo) EventsByID(ctx context.Context, ids []int64) ([]record.Event, error) {
	return byIDs[Event](ctx, r.db, ids, (*Event).toRecord)
}

// EventsByOrganization returns the events owned by orgID, ascending id.
func (r *Repo) EventsByOrganization(ctx context.Context, orgID int64) ([]record.Event, error) {
	var rows []Event
	if err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select events of organization %d: %w", orgID, err)
	}
	return convert(rows, (*Event).toRecord), nil
}

func (r *Repo) ListResources(ctx context.Context) ([]record.Resource, error) {
	return list[Resource](ctx, r.db, (*Resource).toRecord)
}

func (r *Repo) GetResource(ctx context.Context, id int64) (record.Resource, error) {
	return get[Resource](ctx, r.db, record.KindResource, id, (*Resource).toRecord)
}

func (r *Repo) ResourcesByID(ctx context.Context, ids []int64) ([]record.Resource, error) {
	return byIDs[Resource](ctx, r.db, ids, (*Resource).toRecord)
}

type linkRow struct {
	KeyID   int64
	OtherID int64
}

// linkColumns returns the join table and its (key, other) columns for side.
func linkColumns(set record.LinkSet, side record.Side) (table, key, other string) {
	left := "organization_id"
	if set == record.EventResources {
		left = "event_id"
	}
	if side == record.Left {
		return string(set), left, "resource_id"
	}
	return string(set), "resource_id", left
}

// Linked resolves one side of a link set for all ids in one query.
func (r *Repo) Linked(
	ctx context.Context, set record.LinkSet, side record.Side, ids []int64,
) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []linkRow
	if err := linkQuery(r.db.WithContext(ctx), set, side, ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select %s: %w", set, err)
	}
	for _, row := range rows {
		out[row.KeyID] = append(out[row.KeyID], row.OtherID)
	}
	return out, nil
}

func linkQuery(tx *gorm.DB, set record.LinkSet, side record.Side, ids []int64) *gorm.DB {
	table, key, other := linkColumns(set, side)
	return tx.Table(table).
		Select(key+" AS key_id, "+other+" AS other_id").
		Where(key+" IN ?", ids).
		Order(key + ", " + other)
}

// Seeded reports whether any collection holds records.
func (r *Repo) Seeded(ctx context.Context) (bool, error) {
	for _, m := range []any{&Organization{}, &Event{}, &Resource{}} {
		var n int64
		if err := r.db.WithContext(ctx).Model(m).Limit(1).Count(&n).Error; err != nil {
			return false, fmt.Errorf("count: %w", err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Save replaces every table's contents with ds in one transaction.
func (r *Repo) Save(ctx context.Context, ds record.Dataset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []any{&EventResource{}, &OrganizationResource{}, &Event{}, &Resource{}, &Organization{}} {
			if err := all.Delete(m).Error; err != nil {
				return fmt.Errorf("clear %T: %w", m, err)
			}
		}

		if err := insert(tx, convertPtr(ds.Organizations, fromOrganization)); err != nil {
			return fmt.Errorf("insert organizations: %w", err)
		}
		if err := insert(tx, convertPtr(ds.Events, fromEvent)); err != nil {
			return fmt.Errorf("insert events: %w", err)
		}
		if err := insert(tx, convertPtr(ds.Resources, fromResource)); err != nil {
			return fmt.Errorf("insert resources: %w", err)
		}

		var er []EventResource
		for _, l := range ds.LinksOf(record.EventResources) {
			er = append(er, EventResource{EventID: l.Left, ResourceID: l.Right})
		}
		if err := insert(tx, er); err != nil {
			return fmt.Errorf("insert event resources: %w", err)
		}
		var or []OrganizationResource
		for _, l := range ds.LinksOf(record.OrganizationResources) {
			or = append(or, OrganizationResource{OrganizationID: l.Left, ResourceID: l.Right})
		}
		if err := insert(tx, or); err != nil {
			return fmt.Errorf("insert organization resources: %w", err)
		}
		return nil
	})
}

func insert[M any](tx *gorm.DB, rows []M) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, batchSize).Error
}

func list[M any, R any](ctx context.Context, db *gorm.DB, conv func(*M) R) ([]R, error) {
	var rows []M
	if err := db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return convert(rows, conv), nil
}

func get[M any, R any](
	ctx context.Context, db *gorm.DB, kind record.Kind, id int64, conv func(*M) R,
) (R, error) {
	var row M
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		var zero R
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, domain.NewNotFound(string(kind), id)
		}
		return zero, fmt.Errorf("select %s %d: %w", kind, id, err)
	}
	return conv(&row), nil
}

func byIDs[M any, R any](ctx context.Context, db *gorm.DB, ids []int64, conv func(*M) R) ([]R, error) {
	if len(ids) == 0 {
		return []R{}, nil
	}
	var rows []M
	if err := db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select by id: %w", err)
	}
	return convert(rows, conv), nil
}

func convert[M any, R any](rows []M, conv func(*M) R) []R {
	out := make([]R, len(rows))
	for i := range rows {
		out[i] = conv(&rows[i])
	}
	return out
}

func convertPtr[R any, M any](recs []R, conv func(*R) M) []M {
	out := make([]M, len(recs))
	for i := range recs {
		out[i] = conv(&recs[i])
	}
	return out
}
