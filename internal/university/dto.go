// AngelaMos | 2026
// dto.go

package university

import (
	"strings"
	"time"
)

type CreateUniversityRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=200"`
	Location string `json:"location" validate:"required,min=1,max=200"`
}

func (r *CreateUniversityRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
}

type CreateUniversityResponse struct {
	UniversityID string `json:"universityId"`
}

type UniversityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUniversityResponseList(us []University) []UniversityResponse {
	out := make([]UniversityResponse, 0, len(us))
	for _, u := range us {
		out = append(out, UniversityResponse{
			ID:        u.ID,
			Name:      u.Name,
			Location:  u.Location,
			CreatedAt: u.CreatedAt,
		})
	}
	return out
}
