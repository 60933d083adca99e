// Package models contains data structures for the application's domain models.
package models

// User represents a registered account. Users are immutable after signup;
// there is no profile edit or account deletion surface.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// PublicUser is the shape returned by the user listing endpoint.
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
