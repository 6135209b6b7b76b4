package model

import "time"

type User struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	Name         string      `json:"name" gorm:"not null"`
	Email        string      `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string      `json:"-" gorm:"not null"`
	Interviews   []Interview `json:"interviews,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time   `json:"created_at"`
}
