package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/immigrow/catalog/internal/domain/record"
	"github.com/immigrow/catalog/internal/logger"
)

// Writer persists a complete dataset, replacing what the store held before.
type Writer interface {
	Save(ctx context.Context, ds record.Dataset) error
}

// Report summarizes one ingestion run.
type Report struct {
	RunID         string
	Organizations int
	Events        int
	Resources     int
	Links         int
	Duplicates    Duplicates
}

// Pipeline runs normalize, dedupe, assign and link, then hands the result to a Writer.
type Pipeline struct {
	w        Writer
	now      func() time.Time
	newID    func() uuid.UUID
	minLinks int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for timestamps and missing dates.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithMinLinks sets the backfill target per record. Zero disables backfill.
func WithMinLinks(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.minLinks = n
		}
	}
}

// WithRunID sets the run id generator.
func WithRunID(gen func() uuid.UUID) Option {
	return func(p *Pipeline) {
		if gen != nil {
			p.newID = gen
		}
	}
}

// New creates a pipeline writing to w.
func New(w Writer, opts ...Option) *Pipeline {
	p := &Pipeline{
		w:        w,
		now:      time.Now,
		newID:    uuid.New,
		minLinks: DefaultMinLinks,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Build transforms raw records into a dataset without writing it.
func (p *Pipeline) Build(raw RawDataset) (record.Dataset, Duplicates) {
	now := p.now().UTC()
	b, dup := Dedupe(Normalize(raw, now))
	ds := Assign(b, now)
	ds.Links = Link(&ds, p.minLinks)
	return ds, dup
}

// Run builds the dataset and saves it.
func (p *Pipeline) Run(ctx context.Context, raw RawDataset) (Report, error) {
	runID := p.newID().String()
	ctx, log := logger.With(ctx, zap.String("run_id", runID))

	ds, dup := p.Build(raw)
	rep := Report{
		RunID:         runID,
		Organizations: len(ds.Organizations),
		Events:        len(ds.Events),
		Resources:     len(ds.Resources),
		Links:         len(ds.Links),
		Duplicates:    dup,
	}
	log.Info("dataset built",
		zap.Int("organizations", rep.Organizations),
		zap.Int("events", rep.Events),
		zap.Int("resources", rep.Resources),
		zap.Int("links", rep.Links),
		zap.Int("duplicates", dup.Total()),
	)

	start := time.Now()
	if err := p.w.Save(ctx, ds); err != nil {
		log.Error("save dataset", zap.Error(err))
		return rep, fmt.Errorf("save dataset: %w", err)
	}
	log.Info("dataset saved", zap.Duration("elapsed", time.Since(start)))
	return rep, nil
}

// Assign numbers each kind 1..n in input order, stamps CreatedAt/UpdatedAt
// and resolves event owners to organization ids.
func Assign(b Batch, now time.Time) record.Dataset {
	ds := record.Dataset{
		Organizations: b.Organizations,
		Events:        b.Events,
		Resources:     b.Resources,
	}
	for i := range ds.Organizations {
		ds.Organizations[i].ID = int64(i + 1)
		ds.Organizations[i].CreatedAt, ds.Organizations[i].UpdatedAt = now, now
	}
	for i := range ds.Events {
		ds.Events[i].ID = int64(i + 1)
		ds.Events[i].CreatedAt, ds.Events[i].UpdatedAt = now, now
		ds.Events[i].OrganizationID = nil
		if i < len(b.Owners) && b.Owners[i] >= 0 && b.Owners[i] < len(ds.Organizations) {
			id := ds.Organizations[b.Owners[i]].ID
			ds.Events[i].OrganizationID = &id
		}
	}
	for i := range ds.Resources {
		ds.Resources[i].ID = int64(i + 1)
		ds.Resources[i].CreatedAt, ds.Resources[i].UpdatedAt = now, now
	}
	return ds
}
