package entity

import "time"

// Patient is provisioned by the registration service; scheduling only reads it
type Patient struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	CPF       string    `gorm:"column:cpf;type:varchar(14);uniqueIndex" json:"cpf"`
	BirthDate time.Time `gorm:"type:date" json:"birth_date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}
