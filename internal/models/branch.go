package models

import "time"

// Branch (cabang) is a physical location. New orders can only be created
// against a branch while IsOpen is true.
type Branch struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"size:100;not null;unique" json:"name"`
	IsOpen     bool       `gorm:"not null;default:false" json:"isOpen"`
	LastOpened *time.Time `json:"lastOpened"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Users []User `json:"-"`
}
