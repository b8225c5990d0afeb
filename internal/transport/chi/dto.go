package chi

import (
	"time"

	"github.com/immigrow/catalog/internal/domain/record"
	"github.com/immigrow/catalog/internal/domain/search/page"
	"github.com/immigrow/catalog/internal/domain/search/request"
	"github.com/immigrow/catalog/internal/usecase/catalog"
)

const dateLayout = time.DateOnly

type errorResponse struct {
	Error string `json:"error"`
}

type sortEcho struct {
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// listResponse is the page envelope of every list endpoint.
type listResponse[T any] struct {
	Data        []T               `json:"data"`
	Total       int               `json:"total"`
	Page        int               `json:"page"`
	PerPage     int               `json:"per_page"`
	TotalPages  int               `json:"total_pages"`
	SearchQuery string            `json:"search_query"`
	Filters     map[string]string `json:"filters"`
	Sort        sortEcho          `json:"sort"`
}

func envelope[T, D any](req *request.Request, p page.Page[T], conv func(T) D) listResponse[D] {
	mapped := page.Map(p, conv)
	data := mapped.Items
	if data == nil {
		data = []D{}
	}
	o := req.Order()
	return listResponse[D]{
		Data:        data,
		Total:       p.Total,
		Page:        p.Page,
		PerPage:     p.PerPage,
		TotalPages:  p.TotalPages(),
		SearchQuery: req.Search(),
		Filters:     req.Filters().Echo(),
		Sort:        sortEcho{SortBy: o.Requested, SortOrder: string(o.Direction)},
	}
}

type organizationDTO struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	City             string `json:"city"`
	State            string `json:"state"`
	Topic            string `json:"topic"`
	Size             string `json:"size"`
	MeetingFrequency string `json:"meeting_frequency"`
	Description      string `json:"description"`
	Address          string `json:"address"`
	Zipcode          string `json:"zipcode"`
	EIN              string `json:"ein"`
	SubsectionCode   string `json:"subsection_code"`
	NTEECode         string `json:"ntee_code"`
	ExternalURL      string `json:"external_url"`
	ImageURL         string `json:"image_url"`
	GuidestarURL     string `json:"guidestar_url"`
	Form990PDFURL    string `json:"form_990_pdf_url"`
}

type eventDTO struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Date            *string `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Location        string  `json:"location"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	VenueName       string  `json:"venue_name"`
	Description     string  `json:"description"`
	ExternalURL     string  `json:"external_url"`
	ImageURL        string  `json:"image_url"`
	Timezone        string  `json:"timezone"`
	OrganizationID  *int64  `json:"organization_id"`
}

type resourceDTO struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	DatePublished *string `json:"date_published"`
	Topic         string  `json:"topic"`
	Scope         string  `json:"scope"`
	Description   string  `json:"description"`
	Format        string  `json:"format"`
	CourtName     string  `json:"court_name"`
	Citation      string  `json:"citation"`
	ExternalURL   string  `json:"external_url"`
	ImageURL      string  `json:"image_url"`
	AudioURL      string  `json:"audio_url"`
	DocketNumber  string  `json:"docket_number"`
	JudgeName     string  `json:"judge_name"`
}

type organizationItemDTO struct {
	organizationDTO
	ResourceIDs []int64 `json:"resource_ids"`
}

type eventItemDTO struct {
	eventDTO
	ResourceIDs []int64 `json:"resource_ids"`
}

type resourceItemDTO struct {
	resourceDTO
	EventIDs        []int64 `json:"event_ids"`
	OrganizationIDs []int64 `json:"organization_ids"`
}

type organizationDetailDTO struct {
	organizationDTO
	Events    []eventDTO    `json:"events"`
	Resources []resourceDTO `json:"resources"`
}

type eventDetailDTO struct {
	eventDTO
	Organization *organizationDTO `json:"organization"`
	Resources    []resourceDTO    `json:"resources"`
}

type resourceDetailDTO struct {
	resourceDTO
	Organizations []organizationDTO `json:"organizations"`
	Events        []eventDTO        `json:"events"`
}

func organizationToDTO(o *record.Organization) organizationDTO {
	return organizationDTO{
		ID:               o.ID,
		Name:             o.Name,
		City:             o.City,
		State:            o.State,
		Topic:            o.Topic,
		Size:             o.Size,
		MeetingFrequency: o.MeetingFrequency,
		Description:      o.Description,
		Address:          o.Address,
		Zipcode:          o.Zipcode,
		EIN:              o.EIN,
		SubsectionCode:   o.SubsectionCode,
		NTEECode:         o.NTEECode,
		ExternalURL:      o.ExternalURL,
		ImageURL:         o.ImageURL,
		GuidestarURL:     o.GuidestarURL,
		Form990PDFURL:    o.Form990PDFURL,
	}
}

func eventToDTO(e *record.Event) eventDTO {
	return eventDTO{
		ID:              e.ID,
		Title:           e.Title,
		Date:            formatDate(e.Date),
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationMinutes: e.DurationMinutes,
		Location:        e.Location,
		City:            e.City,
		State:           e.State,
		VenueName:       e.VenueName,
		Description:     e.Description,
		ExternalURL:     e.ExternalURL,
		ImageURL:        e.ImageURL,
		Timezone:        e.Timezone,
		OrganizationID:  e.OrganizationID,
	}
}

func resourceToDTO(r *record.Resource) resourceDTO {
	return resourceDTO{
		ID:            r.ID,
		Title:         r.Title,
		DatePublished: formatDate(r.DatePublished),
		Topic:         r.Topic,
		Scope:         string(r.Scope),
		Description:   r.Description,
		Format:        r.Format,
		CourtName:     r.CourtName,
		Citation:      r.Citation,
		ExternalURL:   r.ExternalURL,
		ImageURL:      r.ImageURL,
		AudioURL:      r.AudioURL,
		DocketNumber:  r.DocketNumber,
		JudgeName:     r.JudgeName,
	}
}

func organizationItemToDTO(it catalog.OrganizationItem) organizationItemDTO {
	return organizationItemDTO{
		organizationDTO: organizationToDTO(&it.Organization),
		ResourceIDs:     ids(it.ResourceIDs),
	}
}

func eventItemToDTO(it catalog.EventItem) eventItemDTO {
	return eventItemDTO{
		eventDTO:    eventToDTO(&it.Event),
		ResourceIDs: ids(it.ResourceIDs),
	}
}

func resourceItemToDTO(it catalog.ResourceItem) resourceItemDTO {
	return resourceItemDTO{
		resourceDTO:     resourceToDTO(&it.Resource),
		EventIDs:        ids(it.EventIDs),
		OrganizationIDs: ids(it.OrganizationIDs),
	}
}

func organizationDetailToDTO(d *catalog.OrganizationDetail) organizationDetailDTO {
	return organizationDetailDTO{
		organizationDTO: organizationToDTO(&d.Organization),
		Events:          mapSlice(d.Events, eventToDTO),
		Resources:       mapSlice(d.Resources, resourceToDTO),
	}
}

func eventDetailToDTO(d *catalog.EventDetail) eventDetailDTO {
	out := eventDetailDTO{
		eventDTO:  eventToDTO(&d.Event),
		Resources: mapSlice(d.Resources, resourceToDTO),
	}
	if d.Organization != nil {
		o := organizationToDTO(d.Organization)
		out.Organization = &o
	}
	return out
}

func resourceDetailToDTO(d *catalog.ResourceDetail) resourceDetailDTO {
	return resourceDetailDTO{
		resourceDTO:   resourceToDTO(&d.Resource),
		Organizations: mapSlice(d.Organizations, organizationToDTO),
		Events:        mapSlice(d.Events, eventToDTO),
	}
}

// mapSlice converts records to DTOs, never returning nil so JSON renders [].
func mapSlice[T, D any](in []T, conv func(*T) D) []D {
	out := make([]D, len(in))
	for i := range in {
		out[i] = conv(&in[i])
	}
	return out
}

func ids(in []int64) []int64 {
	if in == nil {
		return []int64{}
	}
	return in
}

func formatDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
