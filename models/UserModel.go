package models

import "time"

// User holds login credentials. Password is a bcrypt hash and is never
// serialized.
type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"`
}
