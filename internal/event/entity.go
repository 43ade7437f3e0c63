// AngelaMos | 2026
// entity.go

package event

import (
	"time"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
	VisibilityRSO     = "rso"
)

type Event struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Location     string    `db:"location"`
	EventTime    time.Time `db:"event_time"`
	Category     string    `db:"category"`
	ContactPhone string    `db:"contact_phone"`
	ContactEmail string    `db:"contact_email"`
	Visibility   string    `db:"visibility"`
	AdminID      string    `db:"admin_id"`
	UniversityID string    `db:"university_id"`
	RSOID        *string   `db:"rso_id"`
	RSOName      *string   `db:"rso_name"`
	CreatedAt    time.Time `db:"created_at"`
}
