package sqlcatalog

import (
	"time"

	"github.com/immigrow/catalog/internal/domain/record"
)

// Organization is the organization table row.
type Organization struct {
	ID               int64   `gorm:"primaryKey"`
	Name             string  `gorm:"size:255;not null"`
	City             string  `gorm:"size:100;not null"`
	State            string  `gorm:"size:50;not null;index"`
	Topic            string  `gorm:"size:100;not null"`
	Size             string  `gorm:"size:50;not null"`
	MeetingFrequency string  `gorm:"size:50"`
	Description      string  `gorm:"type:text"`
	Address          string  `gorm:"size:255"`
	Zipcode          string  `gorm:"size:20"`
	EIN              *string `gorm:"column:ein;size:20;uniqueIndex"`
	SubsectionCode   string  `gorm:"size:50"`
	NTEECode         string  `gorm:"column:ntee_code;size:50"`
	ExternalURL      string  `gorm:"size:255"`
	ImageURL         string  `gorm:"size:255"`
	GuidestarURL     string  `gorm:"size:255"`
	Form990PDFURL    string  `gorm:"column:form_990_pdf_url;size:255"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Events []Event `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the pluralized default.
func (Organization) TableName() string { return "organization" }

// Event is the event table row.
type Event struct {
	ID              int64      `gorm:"primaryKey"`
	Title           string     `gorm:"size:255;not null"`
	Date            *time.Time `gorm:"type:date;index"`
	StartTime       string     `gorm:"size:20"`
	EndTime         string     `gorm:"size:20"`
	DurationMinutes int        `gorm:"not null;default:0;check:duration_minutes >= 0"`
	Location        string     `gorm:"size:255"`
	City            string     `gorm:"size:100"`
	State           string     `gorm:"size:50"`
	VenueName       string     `gorm:"size:255"`
	Description     string     `gorm:"type:text"`
	ExternalURL     string     `gorm:"size:255"`
	ImageURL        string     `gorm:"size:255"`
	EventbriteID    *string    `gorm:"size:100;uniqueIndex"`
	Timezone        string     `gorm:"size:50"`
	OrganizationID  *int64     `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the pluralized default.
func (Event) TableName() string { return "event" }

// Resource is the resource table row.
type Resource struct {
	ID              int64      `gorm:"primaryKey"`
	Title           string     `gorm:"size:255;not null"`
	DatePublished   *time.Time `gorm:"type:date;index"`
	Topic           string     `gorm:"size:100"`
	Scope           string     `gorm:"size:100"`
	Description     string     `gorm:"type:text"`
	Format          string     `gorm:"size:50"`
	CourtName       string     `gorm:"size:255"`
	Citation        string     `gorm:"size:255"`
	ExternalURL     string     `gorm:"size:255"`
	ImageURL        string     `gorm:"size:255"`
	AudioURL        string     `gorm:"size:255"`
	CourtListenerID *string    `gorm:"column:courtlistener_id;size:100;uniqueIndex"`
	DocketNumber    string     `gorm:"size:100"`
	JudgeName       string     `gorm:"size:255"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the pluralized default.
func (Resource) TableName() string { return "resource" }

// EventResource is a row of the event_resources join table.
type EventResource struct {
	EventID    int64    `gorm:"primaryKey"`
	ResourceID int64    `gorm:"primaryKey;index"`
	Event      Event    `gorm:"constraint:OnDelete:CASCADE"`
	Resource   Resource `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName pins the join table name.
func (EventResource) TableName() string { return string(record.EventResources) }

// OrganizationResource is a row of the organization_resources join table.
type OrganizationResource struct {
	OrganizationID int64        `gorm:"primaryKey"`
	ResourceID     int64        `gorm:"primaryKey;index"`
	Organization   Organization `gorm:"constraint:OnDelete:CASCADE"`
	Resource       Resource     `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName pins the join table name.
func (OrganizationResource) TableName() string { return string(record.OrganizationResources) }

// Models lists every table in migration order.
func Models() []any {
	return []any{&Organization{}, &Event{}, &Resource{}, &EventResource{}, &OrganizationResource{}}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefDate(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func fromOrganization(o *record.Organization) Organization {
	return Organization{
		ID: o.ID, Name: o.Name, City: o.City, State: o.State, Topic: o.Topic, Size: o.Size,
		MeetingFrequency: o.MeetingFrequency, Description: o.Description, Address: o.Address,
		Zipcode: o.Zipcode, EIN: optional(o.EIN), SubsectionCode: o.SubsectionCode, NTEECode: o.NTEECode,
		ExternalURL: o.ExternalURL, ImageURL: o.ImageURL, GuidestarURL: o.GuidestarURL,
		Form990PDFURL: o.Form990PDFURL, CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
}

func (m *Organization) toRecord() record.Organization {
	return record.Organization{
		ID: m.ID, Name: m.Name, City: m.City, State: m.State, Topic: m.Topic, Size: m.Size,
		MeetingFrequency: m.MeetingFrequency, Description: m.Description, Address: m.Address,
		Zipcode: m.Zipcode, EIN: deref(m.EIN), SubsectionCode: m.SubsectionCode, NTEECode: m.NTEECode,
		ExternalURL: m.ExternalURL, ImageURL: m.ImageURL, GuidestarURL: m.GuidestarURL,
		Form990PDFURL: m.Form990PDFURL, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func fromEvent(e *record.Event) Event {
	return Event{
		ID: e.ID, Title: e.Title, Date: optionalDate(e.Date), StartTime: e.StartTime, EndTime: e.EndTime,
		DurationMinutes: e.DurationMinutes, Location: e.Location, City: e.City, State: e.State,
		VenueName: e.VenueName, Description: e.Description, ExternalURL: e.ExternalURL, ImageURL: e.ImageURL,
		EventbriteID: optional(e.EventbriteID), Timezone: e.Timezone, OrganizationID: e.OrganizationID,
		CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
	}
}

func (m *Event) toRecord() record.Event {
	return record.Event{
		ID: m.ID, Title: m.Title, Date: derefDate(m.Date), StartTime: m.StartTime, EndTime: m.EndTime,
		DurationMinutes: m.DurationMinutes, Location: m.Location, City: m.City, State: m.State,
		VenueName: m.VenueName, Description: m.Description, ExternalURL: m.ExternalURL, ImageURL: m.ImageURL,
		EventbriteID: deref(m.EventbriteID), Timezone: m.Timezone, OrganizationID: m.OrganizationID,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func fromResource(r *record.Resource) Resource {
	return Resource{
		ID: r.ID, Title: r.Title, DatePublished: optionalDate(r.DatePublished), Topic: r.Topic,
		Scope: string(r.Scope), Description: r.Description, Format: r.Format, CourtName: r.CourtName,
		Citation: r.Citation, ExternalURL: r.ExternalURL, ImageURL: r.ImageURL, AudioURL: r.AudioURL,
		CourtListenerID: optional(r.CourtListenerID), DocketNumber: r.DocketNumber, JudgeName: r.JudgeName,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (m *Resource) toRecord() record.Resource {
	return record.Resource{
		ID: m.ID, Title: m.Title, DatePublished: derefDate(m.DatePublished), Topic: m.Topic,
		Scope: record.Scope(m.Scope), Description: m.Description, Format: m.Format, CourtName: m.CourtName,
		Citation: m.Citation, ExternalURL: m.ExternalURL, ImageURL: m.ImageURL, AudioURL: m.AudioURL,
		CourtListenerID: deref(m.CourtListenerID), DocketNumber: m.DocketNumber, JudgeName: m.JudgeName,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}
