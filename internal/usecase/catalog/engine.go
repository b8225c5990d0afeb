package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/immigrow/catalog/internal/domain/record"
	"github.com/immigrow/catalog/internal/domain/search/filter"
	"github.com/immigrow/catalog/internal/domain/search/page"
	"github.com/immigrow/catalog/internal/domain/search/request"
	"github.com/immigrow/catalog/internal/logger"
)

// Pipeline modes, used as metric and log labels.
const (
	ModeSearch = "search"
	ModeBrowse = "browse"
)

// descriptor binds the generic list pipeline to one entity type.
type descriptor[T any] struct {
	kind    record.Kind
	schema  request.Schema
	id      func(*T) int64
	values  func(*T) []string
	text    map[string]func(*T) string
	minutes func(*T) int
	columns map[string]func(a, b *T) int
}

func (d *descriptor[T]) match(rec *T, expr filter.Expression) bool {
	for _, c := range expr.Conditions() {
		if c.Kind() == filter.Duration {
			if d.minutes == nil || !c.MatchMinutes(d.minutes(rec)) {
				return false
			}
			continue
		}
		attr, ok := d.text[c.Key()]
		if !ok || !c.MatchText(attr(rec)) {
			return false
		}
	}
	return true
}

// run narrows, filters, orders and paginates all.
func (d *descriptor[T]) run(all []T, req *request.Request) page.Page[T] {
	q := req.Query()
	search := req.HasSearch()
	expr := req.Filters()

	survivors := make([]T, 0, len(all))
	for i := range all {
		rec := &all[i]
		if search && !q.Matches(d.values(rec)) {
			continue
		}
		if !d.match(rec, expr) {
			continue
		}
		survivors = append(survivors, *rec)
	}

	if search {
		d.rank(survivors, req)
	} else {
		d.sort(survivors, req)
	}
	return page.Slice(survivors, req.Page(), req.PerPage())
}

func (d *descriptor[T]) rank(recs []T, req *request.Request) {
	type scored struct {
		rec   T
		score int
	}
	q := req.Query()
	tmp := make([]scored, len(recs))
	for i := range recs {
		tmp[i] = scored{rec: recs[i], score: q.Score(d.values(&recs[i]))}
	}
	// Stable: equal scores keep ascending id order.
	slices.SortStableFunc(tmp, func(a, b scored) int { return cmp.Compare(b.score, a.score) })
	for i := range tmp {
		recs[i] = tmp[i].rec
	}
}

func (d *descriptor[T]) sort(recs []T, req *request.Request) {
	o := req.Order()
	compare := d.columns[o.Column]
	desc := o.Descending()
	slices.SortStableFunc(recs, func(a, b T) int {
		if compare != nil {
			c := compare(&a, &b)
			if desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(d.id(&a), d.id(&b))
	})
}

func (d *descriptor[T]) ids(recs []T) []int64 {
	out := make([]int64, len(recs))
	for i := range recs {
		out[i] = d.id(&recs[i])
	}
	return out
}

// list loads the base collection, runs the pipeline and records the outcome.
func list[T any](
	ctx context.Context, s *Service, d *descriptor[T],
	load func(context.Context) ([]T, error), req *request.Request,
) (page.Page[T], error) {
	start := time.Now()
	mode := ModeBrowse
	if req.HasSearch() {
		mode = ModeSearch
	}

	all, err := load(ctx)
	if err != nil {
		s.recorder.ObserveQueryError(string(d.kind))
		return page.Page[T]{}, fmt.Errorf("list %ss: %w", d.kind, err)
	}
	p := d.run(all, req)

	elapsed := time.Since(start)
	s.recorder.ObserveQuery(string(d.kind), mode, elapsed, p.Total)
	logger.FromContext(ctx).Debug("list query",
		zap.String("entity", string(d.kind)),
		zap.String("mode", mode),
		zap.Int("total", p.Total),
		zap.Int("page", p.Page),
		zap.Int("per_page", p.PerPage),
		zap.Duration("duration", elapsed),
	)
	return p, nil
}

func compareText[T any](get func(*T) string) func(a, b *T) int {
	return func(a, b *T) int {
		return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
	}
}

func compareTime[T any](get func(*T) time.Time) func(a, b *T) int {
	return func(a, b *T) int { return get(a).Compare(get(b)) }
}

func compareInt[T any](get func(*T) int) func(a, b *T) int {
	return func(a, b *T) int { return cmp.Compare(get(a), get(b)) }
}

func linkIDs(m map[int64][]int64, id int64) []int64 {
	if ids, ok := m[id]; ok {
		return ids
	}
	return []int64{}
}
