package models

import "time"

// Menu is the catalog of purchasable items. Price is the single source of
// truth for line-item pricing; client-supplied prices are never trusted.
// Image bytes never marshal directly, reads re-encode them as a data URI.
type Menu struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Price       int64     `gorm:"not null" json:"price"` // rupiah, whole units
	Description string    `gorm:"size:255" json:"description"`
	Image       []byte    `gorm:"type:bytea" json:"-"`
	Kategori    string    `gorm:"size:50;index" json:"kategori"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
