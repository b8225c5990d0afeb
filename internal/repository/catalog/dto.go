package catalog

import (
	"strconv"
	"time"

	"github.com/immigrow/catalog/internal/domain/record"
)

const dateLayout = time.DateOnly

// fields is a flat hash encoding. Empty values are omitted on write.
type fields map[string]string

func (f fields) put(k, v string) {
	if v != "" {
		f[k] = v
	}
}

func (f fields) putTime(k string, t time.Time) {
	if !t.IsZero() {
		f[k] = t.UTC().Format(time.RFC3339Nano)
	}
}

func (f fields) putDate(k string, t time.Time) {
	if !t.IsZero() {
		f[k] = t.Format(dateLayout)
	}
}

func (f fields) int64(k string) int64 {
	n, _ := strconv.ParseInt(f[k], 10, 64)
	return n
}

func (f fields) time(k string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, f[k])
	return t
}

func (f fields) date(k string) time.Time {
	t, _ := time.Parse(dateLayout, f[k])
	return t
}

func organizationFields(o *record.Organization) fields {
	f := fields{"id": strconv.FormatInt(o.ID, 10)}
	f.put("name", o.Name)
	f.put("city", o.City)
	f.put("state", o.State)
	f.put("topic", o.Topic)
	f.put("size", o.Size)
	f.put("meeting_frequency", o.MeetingFrequency)
	f.put("description", o.Description)
	f.put("address", o.Address)
	f.put("zipcode", o.Zipcode)
	f.put("ein", o.EIN)
	f.put("subsection_code", o.SubsectionCode)
	f.put("ntee_code", o.NTEECode)
	f.put("external_url", o.ExternalURL)
	f.put("image_url", o.ImageURL)
	f.put("guidestar_url", o.GuidestarURL)
	f.put("form_990_pdf_url", o.Form990PDFURL)
	f.putTime("created_at", o.CreatedAt)
	f.putTime("updated_at", o.UpdatedAt)
	return f
}

func parseOrganization(f fields) record.Organization {
	return record.Organization{
		ID:               f.int64("id"),
		Name:             f["name"],
		City:             f["city"],
		State:            f["state"],
		Topic:            f["topic"],
		Size:             f["size"],
		MeetingFrequency: f["meeting_frequency"],
		Description:      f["description"],
		Address:          f["address"],
		Zipcode:          f["zipcode"],
		EIN:              f["ein"],
		SubsectionCode:   f["subsection_code"],
		NTEECode:         f["ntee_code"],
		ExternalURL:      f["external_url"],
		ImageURL:         f["image_url"],
		GuidestarURL:     f["guidestar_url"],
		Form990PDFURL:    f["form_990_pdf_url"],
		CreatedAt:        f.time("created_at"),
		UpdatedAt:        f.time("updated_at"),
	}
}

func eventFields(e *record.Event) fields {
	f := fields{
		"id":               strconv.FormatInt(e.ID, 10),
		"duration_minutes": strconv.Itoa(e.DurationMinutes),
	}
	f.put("title", e.Title)
	f.putDate("date", e.Date)
	f.put("start_time", e.StartTime)
	f.put("end_time", e.EndTime)
	f.put("location", e.Location)
	f.put("city", e.City)
	f.put("state", e.State)
	f.put("venue_name", e.VenueName)
	f.put("description", e.Description)
	f.put("external_url", e.ExternalURL)
	f.put("image_url", e.ImageURL)
	f.put("eventbrite_id", e.EventbriteID)
	f.put("timezone", e.Timezone)
	if e.OrganizationID != nil {
		f["organization_id"] = strconv.FormatInt(*e.OrganizationID, 10)
	}
	f.putTime("created_at", e.CreatedAt)
	f.putTime("updated_at", e.UpdatedAt)
	return f
}

func parseEvent(f fields) record.Event {
	minutes, _ := strconv.Atoi(f["duration_minutes"])
	e := record.Event{
		ID:              f.int64("id"),
		Title:           f["title"],
		Date:            f.date("date"),
		StartTime:       f["start_time"],
		EndTime:         f["end_time"],
		DurationMinutes: minutes,
		Location:        f["location"],
		City:            f["city"],
		State:           f["state"],
		VenueName:       f["venue_name"],
		Description:     f["description"],
		ExternalURL:     f["external_url"],
		ImageURL:        f["image_url"],
		EventbriteID:    f["eventbrite_id"],
		Timezone:        f["timezone"],
		CreatedAt:       f.time("created_at"),
		UpdatedAt:       f.time("updated_at"),
	}
	if _, ok := f["organization_id"]; ok {
		id := f.int64("organization_id")
		e.OrganizationID = &id
	}
	return e
}

func resourceFields(r *record.Resource) fields {
	f := fields{"id": strconv.FormatInt(r.ID, 10)}
	f.put("title", r.Title)
	f.putDate("date_published", r.DatePublished)
	f.put("topic", r.Topic)
	f.put("scope", string(r.Scope))
	f.put("description", r.Description)
	f.put("format", r.Format)
	f.put("court_name", r.CourtName)
	f.put("citation", r.Citation)
	f.put("external_url", r.ExternalURL)
	f.put("image_url", r.ImageURL)
	f.put("audio_url", r.AudioURL)
	f.put("courtlistener_id", r.CourtListenerID)
	f.put("docket_number", r.DocketNumber)
	f.put("judge_name", r.JudgeName)
	f.putTime("created_at", r.CreatedAt)
	f.putTime("updated_at", r.UpdatedAt)
	return f
}

func parseResource(f fields) record.Resource {
	return record.Resource{
		ID:              f.int64("id"),
		Title:           f["title"],
		DatePublished:   f.date("date_published"),
		Topic:           f["topic"],
		Scope:           record.Scope(f["scope"]),
		Description:     f["description"],
		Format:          f["format"],
		CourtName:       f["court_name"],
		Citation:        f["citation"],
		ExternalURL:     f["external_url"],
		ImageURL:        f["image_url"],
		AudioURL:        f["audio_url"],
		CourtListenerID: f["courtlistener_id"],
		DocketNumber:    f["docket_number"],
		JudgeName:       f["judge_name"],
		CreatedAt:       f.time("created_at"),
		UpdatedAt:       f.time("updated_at"),
	}
}
