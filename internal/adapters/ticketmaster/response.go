package ticketmaster

import "github.com/okian/eventdesk/internal/domain/model"

// searchResponse mirrors the subset of the Discovery API payload we read.
type searchResponse struct {
	Embedded *struct {
		Events []eventPayload `json:"events"`
	} `json:"_embedded"`
	Page *struct {
		Size          int `json:"size"`
		TotalElements int `json:"totalElements"`
		TotalPages    int `json:"totalPages"`
		Number        int `json:"number"`
	} `json:"page"`
}

type named struct {
	Name string `json:"name"`
}

type eventPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
		} `json:"start"`
	} `json:"dates"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Embedded struct {
		Venues []struct {
			Name    string `json:"name"`
			City    named  `json:"city"`
			State   named  `json:"state"`
			Country named  `json:"country"`
		} `json:"venues"`
	} `json:"_embedded"`
}

func (e eventPayload) toModel() model.Event {
	out := model.Event{
		ID:    e.ID,
		Name:  e.Name,
		Start: e.Dates.Start.LocalDate,
		URL:   e.URL,
	}
	if len(e.Images) > 0 {
		out.Image = e.Images[0].URL
	}
	if len(e.Embedded.Venues) > 0 {
		v := e.Embedded.Venues[0]
		out.Venue = v.Name
		out.City = v.City.Name
		out.State = v.State.Name
		out.Country = v.Country.Name
	}
	return out
}
