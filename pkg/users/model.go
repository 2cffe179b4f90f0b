package users

import "time"

// User is a registered principal. The password is only ever stored as a
// bcrypt hash; the hash is never serialized into API responses.
type User struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName overrides the GORM table name.
func (User) TableName() string {
	return "users"
}
