// Package model defines database models
package model

import "time"

const DefaultRole = "viewer"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:viewer" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	Entries []Entry `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

// PublicUser is the part of a user that is safe to send to clients
type PublicUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}
