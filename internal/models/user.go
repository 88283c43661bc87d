package models

import "time"

type UserLevel string

const (
	LevelOwner UserLevel = "owner"
	LevelAdmin UserLevel = "admin"
	LevelStaff UserLevel = "staff"
)

// User accounts are provisioned administratively; this service only reads them.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BranchID     *uint     `json:"idCabang"`
	Branch       *Branch   `json:"-"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Level        UserLevel `gorm:"size:20;not null" json:"level"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
