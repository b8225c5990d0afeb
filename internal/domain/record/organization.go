package record

import "time"

// Organization is a nonprofit supporting immigrant communities.
type Organization struct {
	ID               int64
	Name             string
	City             string
	State            string
	Topic            string
	Size             string
	MeetingFrequency string
	Description      string
	Address          string
	Zipcode          string
	EIN              string
	SubsectionCode   string
	NTEECode         string
	ExternalURL      string
	ImageURL         string
	GuidestarURL     string
	Form990PDFURL    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

var organizationFields = []Field[Organization]{
	{"name", func(o *Organization) string { return o.Name }},
	{"city", func(o *Organization) string { return o.City }},
	{"state", func(o *Organization) string { return o.State }},
	{"topic", func(o *Organization) string { return o.Topic }},
	{"size", func(o *Organization) string { return o.Size }},
	{"meeting_frequency", func(o *Organization) string { return o.MeetingFrequency }},
	{"description", func(o *Organization) string { return o.Description }},
	{"address", func(o *Organization) string { return o.Address }},
	{"zipcode", func(o *Organization) string { return o.Zipcode }},
	{"ein", func(o *Organization) string { return o.EIN }},
	{"subsection_code", func(o *Organization) string { return o.SubsectionCode }},
	{"ntee_code", func(o *Organization) string { return o.NTEECode }},
	{"external_url", func(o *Organization) string { return o.ExternalURL }},
	{"guidestar_url", func(o *Organization) string { return o.GuidestarURL }},
}

// SearchValues implements Searchable.
func (o *Organization) SearchValues() []string { return collect(o, organizationFields) }

// OrganizationSearchFields lists the searchable field names in scoring order.
func OrganizationSearchFields() []string { return fieldNames(organizationFields) }
