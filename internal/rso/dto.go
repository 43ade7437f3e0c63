// AngelaMos | 2026
// dto.go

package rso

import (
	"strings"
	"time"
)

type CreateRSORequest struct {
	Name        string   `json:"name"        validate:"required,min=1,max=120"`
	Description string   `json:"description" validate:"required,max=2000"`
	Members     []string `json:"members"     validate:"required,max=500,dive,required,email,max=255"`
}

func (r *CreateRSORequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	for i, m := range r.Members {
		r.Members[i] = strings.TrimSpace(m)
	}
}

type CreateRSOResponse struct {
	RSOID string `json:"rsoId"`
}

type ApproveRSORequest struct {
	RSOID string `json:"rsoId" validate:"required,uuid"`
}

func (r *ApproveRSORequest) Normalize() {
	r.RSOID = strings.TrimSpace(r.RSOID)
}

type RSOResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	AdminID      string     `json:"admin_id"`
	UniversityID string     `json:"university_id"`
	Status       string     `json:"status"`
	MemberCount  int        `json:"member_count"`
	CreatedAt    time.Time  `json:"created_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
}

func ToRSOResponse(r *RSO) RSOResponse {
	return RSOResponse{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		AdminID:      r.AdminID,
		UniversityID: r.UniversityID,
		Status:       r.Status,
		MemberCount:  r.MemberCount,
		CreatedAt:    r.CreatedAt,
		ApprovedAt:   r.ApprovedAt,
	}
}

func ToRSOResponseList(rsos []RSO) []RSOResponse {
	out := make([]RSOResponse, 0, len(rsos))
	for i := range rsos {
		out = append(out, ToRSOResponse(&rsos[i]))
	}
	return out
}
