// AngelaMos | 2026
// dto.go

package event

import (
	"strings"
	"time"
)

type CreateEventRequest struct {
	Name         string `json:"name"         validate:"required,min=1,max=200"`
	Description  string `json:"description"  validate:"required,max=5000"`
	Location     string `json:"location"     validate:"required,min=1,max=200"`
	Datetime     string `json:"datetime"     validate:"required"`
	Category     string `json:"category"     validate:"required,max=100"`
	ContactPhone string `json:"contactPhone" validate:"required,max=40"`
	ContactEmail string `json:"contactEmail" validate:"required,email,max=255"`
	Visibility   string `json:"visibility"   validate:"required,oneof=public private rso"`
	RSOName      string `json:"rsoName"      validate:"max=120"`
}

func (r *CreateEventRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.Datetime = strings.TrimSpace(r.Datetime)
	r.Category = strings.TrimSpace(r.Category)
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
	r.Visibility, _ = NormalizeVisibility(r.Visibility)
	r.RSOName = strings.TrimSpace(r.RSOName)
}

type CreateEventResponse struct {
	EventID string `json:"eventId"`
}

type EventResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Datetime     string    `json:"datetime"`
	Category     string    `json:"category"`
	ContactPhone string    `json:"contactPhone"`
	ContactEmail string    `json:"contactEmail"`
	Visibility   string    `json:"visibility"`
	AdminID      string    `json:"adminId"`
	UniversityID string    `json:"universityId"`
	RSOID        *string   `json:"rsoId,omitempty"`
	RSOName      *string   `json:"rsoName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToEventResponse(e *Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		Location:     e.Location,
		Datetime:     e.EventTime.UTC().Format(time.RFC3339),
		Category:     e.Category,
		ContactPhone: e.ContactPhone,
		ContactEmail: e.ContactEmail,
		Visibility:   e.Visibility,
		AdminID:      e.AdminID,
		UniversityID: e.UniversityID,
		RSOID:        e.RSOID,
		RSOName:      e.RSOName,
		CreatedAt:    e.CreatedAt,
	}
}

func ToEventResponseList(events []Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, ToEventResponse(&events[i]))
	}
	return out
}
