// AngelaMos | 2026
// entity.go

package rso

import (
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

type RSO struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	Description  string     `db:"description"`
	AdminID      string     `db:"admin_id"`
	UniversityID string     `db:"university_id"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	ApprovedAt   *time.Time `db:"approved_at"`
	MemberCount  int        `db:"member_count"`
}

func (r *RSO) IsApproved() bool {
	return r.Status == StatusApproved
}

type Counts struct {
	Total   int `db:"total"`
	Pending int `db:"pending"`
}
