// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	UniversityID string    `db:"university_id"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

const (
	RoleStudent    = "student"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)
