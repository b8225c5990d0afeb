// Package ingest turns raw provider records into a linked catalog dataset.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
)

// RawDataset is the seed file layout: provider records as fetched, before normalization.
type RawDataset struct {
	Organizations []RawOrganization `json:"organizations"`
	Events        []RawEvent        `json:"events"`
	Resources     []RawResource     `json:"resources"`
}

// RawOrganization is a nonprofit profile as returned by the nonprofit registry.
type RawOrganization struct {
	Name          string `json:"name"`
	City          string `json:"city"`
	State         string `json:"state"`
	Address       string `json:"address"`
	Zipcode       string `json:"zipcode"`
	EIN           string `json:"ein"`
	NTEECode      string `json:"ntee_code"`
	Subsection    string `json:"subseccd"`
	Description   string `json:"description"`
	ExternalURL   string `json:"external_url"`
	ImageURL      string `json:"image_url"`
	GuidestarURL  string `json:"guidestar_url"`
	Form990PDFURL string `json:"form_990_pdf_url"`
}

// RawEvent is an event listing. Start and End are RFC 3339 instants.
type RawEvent struct {
	Title           string `json:"title"`
	Date            string `json:"date"`
	Start           string `json:"start"`
	End             string `json:"end"`
	StartLocal      string `json:"start_local"`
	EndLocal        string `json:"end_local"`
	Timezone        string `json:"timezone"`
	DurationMinutes *int   `json:"duration_minutes"`
	Location        string `json:"location"`
	City            string `json:"city"`
	State           string `json:"state"`
	VenueName       string `json:"venue_name"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	ImageURL        string `json:"image_url"`
	EventbriteID    string `json:"eventbrite_id"`
	// Organization is a zero-based index into RawDataset.Organizations.
	Organization *int `json:"organization"`
}

// RawResource is a court opinion search hit.
type RawResource struct {
	CaseName     string      `json:"case_name"`
	DateFiled    string      `json:"date_filed"`
	Court        string      `json:"court"`
	Snippet      string      `json:"snippet"`
	Citation     string      `json:"citation"`
	AbsoluteURL  string      `json:"absolute_url"`
	ID           json.Number `json:"id"`
	DocketNumber string      `json:"docket_number"`
	Judge        string      `json:"judge"`
	AudioURL     string      `json:"audio_url"`
	ImageURL     string      `json:"image_url"`
}

// Decode reads a RawDataset document.
func Decode(r io.Reader) (RawDataset, error) {
	var raw RawDataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return RawDataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return raw, nil
}
