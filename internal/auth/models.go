package auth

import (
	"time"

	"github.com/AbsensiKu/Absensi-Backend/internal/session"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:120;not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Password       string    `json:"password,omitempty" gorm:"-"`
	HashedPassword string    `gorm:"column:password;not null" json:"-"`
	Role           string    `gorm:"size:20;not null;default:'user'" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

func (User) TableName() string { return "app_auth.users" }

// SessionUser is the point-in-time cookie payload for this user.
func (u User) SessionUser() session.User {
	return session.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
