package user

import "time"

// User mirrors the identity provider's user record. The id is the subject
// claim of the provider's tokens, so it is a string rather than a serial.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:128"`
	Name      string    `json:"name" gorm:"size:255"`
	Email     string    `json:"email" gorm:"size:255;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
