package entity

import "time"

// Doctor is provisioned by the staff service; scheduling only reads it
type Doctor struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	CRM       string    `gorm:"column:crm;type:varchar(20);uniqueIndex" json:"crm"`
	Specialty string    `gorm:"type:varchar(100);index" json:"specialty"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}
