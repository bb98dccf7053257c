package entity

import "time"

// User is a staff account used for authentication
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Role         string    `gorm:"type:varchar(20);not null;index" json:"role"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
