package catalogtest

import (
	"time"

	"github.com/immigrow/catalog/internal/domain/record"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

// Fixture returns a small dataset covering every filter, sort column and link set.
func Fixture() record.Dataset {
	created := day("2024-01-01")
	return record.Dataset{
		Organizations: []record.Organization{
			{ID: 1, Name: "Texas Legal Aid", City: "Austin", State: "TX", Topic: "Legal Services",
				Size: "501(c)(3) Nonprofit", MeetingFrequency: "Weekly", Description: "Free legal help for immigrants",
				EIN: "11-1111111", CreatedAt: created},
			{ID: 2, Name: "Houston Health Collective", City: "Houston", State: "TX", Topic: "Health",
				Size: "501(c)(4) Nonprofit", MeetingFrequency: "Monthly", Description: "Clinic referrals, legal intake",
				EIN: "22-2222222", CreatedAt: created.Add(time.Hour)},
			{ID: 3, Name: "California Immigrant Legal Center", City: "Los Angeles", State: "CA", Topic: "Legal Services",
				Size: "501(c)(3) Nonprofit", MeetingFrequency: "Monthly", Description: "Removal defense",
				EIN: "33-3333333", CreatedAt: created.Add(2 * time.Hour)},
			{ID: 4, Name: "Austin Education Fund", City: "Austin", State: "tx", Topic: "Education",
				Size: "501(c)(3) Nonprofit", MeetingFrequency: "Monthly", Description: "English classes",
				EIN: "44-4444444", CreatedAt: created.Add(3 * time.Hour)},
		},
		Events: []record.Event{
			{ID: 1, Title: "Citizenship Workshop", Date: day("2024-05-10"), StartTime: "10:00", EndTime: "10:45",
				DurationMinutes: 45, Location: "Austin, TX", City: "Austin", State: "TX",
				Timezone: "America/Chicago", OrganizationID: ptr[int64](1), CreatedAt: created},
			{ID: 2, Title: "Know Your Rights", Date: day("2024-03-01"), StartTime: "18:00", EndTime: "19:30",
				DurationMinutes: 90, Location: "Houston, TX", City: "Houston", State: "TX",
				Timezone: "America/Chicago", OrganizationID: ptr[int64](2), CreatedAt: created},
			{ID: 3, Title: "DACA Renewal Clinic", Date: day("2024-04-15"), StartTime: "09:00", EndTime: "12:00",
				DurationMinutes: 180, Location: "Los Angeles, CA", City: "Los Angeles", State: "CA",
				Timezone: "America/Los_Angeles", CreatedAt: created},
		},
		Resources: []record.Resource{
			{ID: 1, Title: "Asylum Eligibility Opinion", DatePublished: day("2021-06-01"), Topic: "Asylum Law",
				Scope: record.ScopeFederal, CourtName: "Court of Appeals for the Fifth Circuit", Format: "Court Opinion",
				CreatedAt: created},
			{ID: 2, Title: "State Benefits Ruling", DatePublished: day("2023-02-01"), Topic: "Legal Services",
				Scope: record.ScopeState, CourtName: "Texas Supreme Court", Format: "Court Opinion",
				CreatedAt: created},
			{ID: 3, Title: "County Ordinance Review", DatePublished: day("2019-09-01"), Topic: "Local Policy",
				Scope: record.ScopeLocal, CourtName: "Travis County Court", Format: "Court Opinion",
				CreatedAt: created},
		},
		Links: []record.Link{
			{Set: record.EventResources, Left: 1, Right: 2},
			{Set: record.EventResources, Left: 1, Right: 1},
			{Set: record.EventResources, Left: 3, Right: 1},
			{Set: record.OrganizationResources, Left: 1, Right: 2},
			{Set: record.OrganizationResources, Left: 3, Right: 1},
			{Set: record.OrganizationResources, Left: 3, Right: 2},
		},
	}
}
