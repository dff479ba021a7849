package models

// User owns posts and comments through their AuthorID columns.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"` // stored lower-cased
	Name     string `gorm:"not null" json:"name"`
	Password string `gorm:"not null" json:"-"` // pbkdf2 hash
	// No DeletedAt: users are never removed
}
