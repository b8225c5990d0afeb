package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/immigrow/catalog/internal/domain/record"
)

type fakeWriter struct {
	saved []record.Dataset
	err   error
}

func (w *fakeWriter) Save(_ context.Context, ds record.Dataset) error {
	w.saved = append(w.saved, ds)
	return w.err
}

var testRunID = uuid.MustParse("6f1c2b7e-3d4a-4c5b-9e8f-0a1b2c3d4e5f")

func testPipeline(w Writer, opts ...Option) *Pipeline {
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithRunID(func() uuid.UUID { return testRunID }),
	}
	return New(w, append(base, opts...)...)
}

func sampleRaw() RawDataset {
	second := 1
	return RawDataset{
		Organizations: []RawOrganization{
			{Name: "Legal Aid of Texas", City: "Austin", State: "TX", EIN: "11", NTEECode: "I80"},
			{Name: "Refugee Welcome", City: "Houston", State: "TX", EIN: "22", NTEECode: "Q33"},
			{Name: "Legal Aid of Texas (dup)", EIN: "11"},
		},
		Events: []RawEvent{
			{Title: "Citizenship Workshop", EventbriteID: "e1", Organization: &second},
			{Title: "Community Picnic", EventbriteID: "e2"},
		},
		Resources: []RawResource{
			{CaseName: "Doe v. Garland (asylum)", Court: "Ninth Circuit", ID: "100"},
			{CaseName: "Smith v. Jones", Court: "Municipal Court", ID: "101", Snippet: "legal services dispute"},
		},
	}
}

func TestPipeline_Build(t *testing.T) {
	p := testPipeline(&fakeWriter{})
	ds, dup := p.Build(sampleRaw())

	if dup.Organizations != 1 {
		t.Errorf("duplicate organizations = %d, want 1", dup.Organizations)
	}
	if len(ds.Organizations) != 2 || len(ds.Events) != 2 || len(ds.Resources) != 2 {
		t.Fatalf("counts = %d/%d/%d", len(ds.Organizations), len(ds.Events), len(ds.Resources))
	}
	for i, o := range ds.Organizations {
		if o.ID != int64(i+1) {
			t.Errorf("organization %d id = %d", i, o.ID)
		}
		if !o.CreatedAt.Equal(testNow) || !o.UpdatedAt.Equal(testNow) {
			t.Errorf("organization %d timestamps = %v/%v", i, o.CreatedAt, o.UpdatedAt)
		}
	}
	if owner := ds.Events[0].OrganizationID; owner == nil || *owner != 2 {
		t.Errorf("event 1 owner = %v, want 2", owner)
	}
	if ds.Events[1].OrganizationID != nil {
		t.Errorf("event 2 owner = %v, want nil", *ds.Events[1].OrganizationID)
	}
	if ds.Resources[1].ID != 2 {
		t.Errorf("resource id = %d", ds.Resources[1].ID)
	}

	// Legal Services org matches the second resource description.
	found := false
	for _, l := range ds.LinksOf(record.OrganizationResources) {
		if l.Left == 1 && l.Right == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("missing topic link org 1 -> resource 2 in %+v", ds.Links)
	}
}

func TestPipeline_Run(t *testing.T) {
	w := &fakeWriter{}
	rep, err := testPipeline(w).Run(context.Background(), sampleRaw())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.RunID != testRunID.String() {
		t.Errorf("RunID = %q", rep.RunID)
	}
	if len(w.saved) != 1 {
		t.Fatalf("Save called %d times, want 1", len(w.saved))
	}
	if rep.Links != len(w.saved[0].Links) || rep.Links == 0 {
		t.Errorf("Links = %d, saved %d", rep.Links, len(w.saved[0].Links))
	}
	if rep.Organizations != 2 || rep.Events != 2 || rep.Resources != 2 {
		t.Errorf("report = %+v", rep)
	}
}

func TestPipeline_Run_SaveError(t *testing.T) {
	boom := errors.New("boom")
	_, err := testPipeline(&fakeWriter{err: boom}).Run(context.Background(), sampleRaw())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPipeline_MinLinksZero(t *testing.T) {
	p := testPipeline(&fakeWriter{}, WithMinLinks(0))
	ds, _ := p.Build(RawDataset{
		Organizations: []RawOrganization{{Name: "A", NTEECode: "W"}},
		Resources:     []RawResource{{CaseName: "Smith v. Jones"}},
	})
	if len(ds.Links) != 0 {
		t.Errorf("links = %+v, want none without backfill", ds.Links)
	}
}

func TestDecode(t *testing.T) {
	doc := `{
		"organizations": [{"name": "A", "ein": "1"}],
		"events": [{"title": "E", "organization": 0}],
		"resources": [{"case_name": "R", "id": 42}]
	}`
	raw, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw.Organizations) != 1 || raw.Events[0].Organization == nil || *raw.Events[0].Organization != 0 {
		t.Errorf("raw = %+v", raw)
	}
	if raw.Resources[0].ID.String() != "42" {
		t.Errorf("resource id = %q", raw.Resources[0].ID)
	}
}

func TestDecode_UnknownField(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"orgs": []}`)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestBuild_SeedFile(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "..", "..", "data", "seed.json"))
	if err != nil {
		t.Fatalf("open seed file: %v", err)
	}
	defer f.Close()

	raw, err := Decode(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ds, dup := testPipeline(nil).Build(raw)
	if len(ds.Organizations) != 3 || len(ds.Events) != 3 || len(ds.Resources) != 3 {
		t.Fatalf("counts = %d/%d/%d", len(ds.Organizations), len(ds.Events), len(ds.Resources))
	}
	if dup.Total() != 0 {
		t.Errorf("duplicates = %+v", dup)
	}

	ev := ds.Events[0]
	if ev.DurationMinutes != 120 || ev.OrganizationID == nil || *ev.OrganizationID != 1 {
		t.Errorf("event 1 = %+v", ev)
	}
	if ds.Events[2].OrganizationID != nil {
		t.Errorf("event 3 owner = %v, want none", *ds.Events[2].OrganizationID)
	}

	linked := map[record.LinkSet]map[int64]bool{
		record.EventResources:        {},
		record.OrganizationResources: {},
	}
	for _, l := range ds.Links {
		linked[l.Set][l.Left] = true
	}
	for _, e := range ds.Events {
		if !linked[record.EventResources][e.ID] {
			t.Errorf("event %d has no resources", e.ID)
		}
	}
	for _, o := range ds.Organizations {
		if !linked[record.OrganizationResources][o.ID] {
			t.Errorf("organization %d has no resources", o.ID)
		}
	}
}
