// AngelaMos | 2026
// entity.go

package university

import (
	"time"
)

type University struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Location  string    `db:"location"`
	CreatedAt time.Time `db:"created_at"`
}
