package ingest

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/immigrow/catalog/internal/domain/record"
)

// DefaultDurationMinutes is used when an event has no usable start/end pair.
const DefaultDurationMinutes = 60

// DefaultOrganizationTopic is the topic for NTEE codes outside the topic map.
const DefaultOrganizationTopic = "Community Services"

// DefaultResourceTopic is the topic for case names without a known keyword.
const DefaultResourceTopic = "Immigration Law"

const courtListenerBase = "https://www.courtlistener.com"

var nteeTopics = map[string]string{
	"Q":   "International Affairs",
	"Q30": "Immigration & Refugee Services",
	"Q33": "Refugee Services",
	"P":   "Human Services",
	"R":   "Civil Rights",
	"R20": "Civil Rights & Advocacy",
	"I":   "Crime & Legal Services",
	"I80": "Legal Services",
	"S":   "Community Improvement",
	"W":   "Public Affairs",
}

// weeklyCodes mark direct-service organizations.
var weeklyCodes = []string{"Q30", "Q33", "I80", "P"}

var (
	federalCourtTerms = []string{"supreme court", "circuit", "district court", "u.s.", "united states"}
	stateCourtTerms   = []string{"state", "appellate", "superior"}
)

// caseTopics is checked in order; the first keyword found wins.
var caseTopics = []struct{ keyword, topic string }{
	{"deportation", "Deportation"},
	{"removal", "Deportation"},
	{"asylum", "Asylum"},
	{"refugee", "Refugee Status"},
	{"visa", "Visa"},
	{"citizenship", "Citizenship"},
	{"naturalization", "Naturalization"},
	{"daca", "DACA"},
	{"green card", "Permanent Residency"},
	{"detention", "Immigration Detention"},
}

// Batch is a normalized dataset before ids are assigned.
type Batch struct {
	Organizations []record.Organization
	Events        []record.Event
	Resources     []record.Resource
	// Owners holds, per event, the index of its organization or -1.
	Owners []int
}

// Normalize applies the catalog normalization rules to every raw record.
// now supplies the date for records without one.
func Normalize(raw RawDataset, now time.Time) Batch {
	b := Batch{
		Organizations: make([]record.Organization, 0, len(raw.Organizations)),
		Events:        make([]record.Event, 0, len(raw.Events)),
		Resources:     make([]record.Resource, 0, len(raw.Resources)),
		Owners:        make([]int, 0, len(raw.Events)),
	}
	for i := range raw.Organizations {
		b.Organizations = append(b.Organizations, NormalizeOrganization(&raw.Organizations[i]))
	}
	for i := range raw.Events {
		e := &raw.Events[i]
		b.Events = append(b.Events, NormalizeEvent(e, now))
		owner := -1
		if e.Organization != nil && *e.Organization >= 0 && *e.Organization < len(raw.Organizations) {
			owner = *e.Organization
		}
		b.Owners = append(b.Owners, owner)
	}
	for i := range raw.Resources {
		b.Resources = append(b.Resources, NormalizeResource(&raw.Resources[i], now))
	}
	return b
}

// NormalizeOrganization maps a registry profile to an Organization.
func NormalizeOrganization(in *RawOrganization) record.Organization {
	name := orDefault(in.Name, "Unknown Organization")
	city := orDefault(in.City, "Unknown")
	state := orDefault(in.State, "Unknown")
	topic := TopicForNTEE(in.NTEECode)
	subsection := orDefault(strings.TrimSpace(in.Subsection), "3")
	ein := strings.TrimSpace(in.EIN)

	description := in.Description
	if description == "" {
		description = fmt.Sprintf("%s - %s organization in %s, %s", name, topic, city, state)
	}
	external := in.ExternalURL
	if external == "" && ein != "" {
		external = "https://www.guidestar.org/profile/" + ein
	}

	return record.Organization{
		Name:             clip(name, 255),
		City:             clip(city, 100),
		State:            clip(state, 50),
		Topic:            clip(topic, 100),
		Size:             clip(SizeForSubsection(subsection), 50),
		MeetingFrequency: MeetingFrequency(in.NTEECode),
		Description:      description,
		Address:          clip(in.Address, 255),
		Zipcode:          clip(in.Zipcode, 20),
		EIN:              clip(ein, 20),
		SubsectionCode:   SubsectionCode(subsection),
		NTEECode:         clip(in.NTEECode, 50),
		ExternalURL:      clip(external, 255),
		ImageURL:         clip(in.ImageURL, 255),
		GuidestarURL:     clip(in.GuidestarURL, 255),
		Form990PDFURL:    clip(in.Form990PDFURL, 255),
	}
}

// TopicForNTEE resolves an NTEE code by exact match, then by its major group letter.
func TopicForNTEE(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if t, ok := nteeTopics[code]; ok {
		return t
	}
	if code != "" {
		if t, ok := nteeTopics[code[:1]]; ok {
			return t
		}
	}
	return DefaultOrganizationTopic
}

// SizeForSubsection renders the size label for an IRS subsection number.
func SizeForSubsection(subsection string) string {
	return fmt.Sprintf("501(c)(%s) Nonprofit", subsection)
}

// SubsectionCode renders the IRS subsection code.
func SubsectionCode(subsection string) string {
	return fmt.Sprintf("501(c)(%s)", subsection)
}

// MeetingFrequency estimates how often an organization meets from its NTEE code.
func MeetingFrequency(code string) string {
	code = strings.ToUpper(code)
	for _, c := range weeklyCodes {
		if strings.Contains(code, c) {
			return "Weekly"
		}
	}
	return "Monthly"
}

// NormalizeEvent maps an event listing to an Event.
func NormalizeEvent(in *RawEvent, now time.Time) record.Event {
	start, startOK := parseInstant(in.Start)
	end, endOK := parseInstant(in.End)

	duration := DefaultDurationMinutes
	switch {
	case in.DurationMinutes != nil && *in.DurationMinutes >= 0:
		duration = *in.DurationMinutes
	case startOK && endOK:
		duration = Duration(start, end)
	}

	var date time.Time
	if d, ok := parseDate(in.Date); ok {
		date = d
	} else if startOK {
		date = dateOf(start.UTC())
	} else {
		date = dateOf(now.UTC())
	}

	city := orDefault(in.City, "Virtual")
	state := orDefault(in.State, "Online")
	location := in.Location
	if location == "" {
		location = Location(city, state)
	}

	return record.Event{
		Title:           clip(orDefault(in.Title, "Untitled Event"), 255),
		Date:            date,
		StartTime:       clip(orDefault(in.StartLocal, "TBD"), 20),
		EndTime:         clip(orDefault(in.EndLocal, "TBD"), 20),
		DurationMinutes: duration,
		Location:        clip(location, 255),
		City:            clip(city, 100),
		State:           clip(state, 50),
		VenueName:       clip(orDefault(in.VenueName, "Online Event"), 255),
		Description:     in.Description,
		ExternalURL:     clip(in.URL, 255),
		ImageURL:        clip(in.ImageURL, 255),
		EventbriteID:    clip(strings.TrimSpace(in.EventbriteID), 100),
		Timezone:        clip(orDefault(in.Timezone, "UTC"), 50),
	}
}

// Duration returns the whole minutes between start and end.
// An end before start yields DefaultDurationMinutes.
func Duration(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		return DefaultDurationMinutes
	}
	return int(d / time.Minute)
}

// Location renders the "City, State" display location.
func Location(city, state string) string {
	return city + ", " + state
}

// NormalizeResource maps a court opinion hit to a Resource.
func NormalizeResource(in *RawResource, now time.Time) record.Resource {
	date, ok := parseDate(in.DateFiled)
	if !ok {
		date = dateOf(now.UTC())
	}
	description := in.Snippet
	if description == "" {
		description = in.CaseName
	}
	external := ""
	if in.AbsoluteURL != "" {
		external = courtListenerBase + in.AbsoluteURL
	}

	return record.Resource{
		Title:           clip(orDefault(in.CaseName, "Untitled Case"), 255),
		DatePublished:   date,
		Topic:           TopicForCase(in.CaseName),
		Scope:           ScopeForCourt(in.Court),
		Description:     clip(description, 1000),
		Format:          "Court Opinion",
		CourtName:       clip(in.Court, 255),
		Citation:        clip(in.Citation, 255),
		ExternalURL:     clip(external, 255),
		ImageURL:        clip(in.ImageURL, 255),
		AudioURL:        clip(in.AudioURL, 255),
		CourtListenerID: clip(in.ID.String(), 100),
		DocketNumber:    clip(in.DocketNumber, 100),
		JudgeName:       clip(in.Judge, 255),
	}
}

// ScopeForCourt classifies a court name as Federal, State or Local.
func ScopeForCourt(court string) record.Scope {
	c := strings.ToLower(court)
	switch {
	case containsAny(c, federalCourtTerms):
		return record.ScopeFederal
	case containsAny(c, stateCourtTerms):
		return record.ScopeState
	default:
		return record.ScopeLocal
	}
}

// TopicForCase picks a topic from keywords in the case name.
func TopicForCase(caseName string) string {
	c := strings.ToLower(caseName)
	for _, kt := range caseTopics {
		if strings.Contains(c, kt.keyword) {
			return kt.topic
		}
	}
	return DefaultResourceTopic
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// clip truncates s to at most n runes.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func parseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseDate accepts a bare date or an RFC 3339 instant.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, ok := parseInstant(s); ok {
		return dateOf(t.UTC()), true
	}
	return time.Time{}, false
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
