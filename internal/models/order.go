package models

import "time"

// Order is one table's running tab. The ID doubles as the opaque token
// subject for customer access, so it is a UUID rather than a serial.
// IsPaid and IsDone are one-way flags: false -> true only.
type Order struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Meja      int    `gorm:"not null" json:"idMeja"` // table number
	UserID    uint   `gorm:"index;not null" json:"idUser"`
	User      User   `json:"-"`
	BranchID  uint   `gorm:"index;not null" json:"idCabang"`
	Branch    Branch `json:"-"`
	Total     int64  `gorm:"not null;default:0" json:"total"`
	IsPaid    bool   `gorm:"not null;default:false" json:"isPaid"`
	IsDone    bool   `gorm:"not null;default:false" json:"isDone"`
	Note      string `gorm:"size:255" json:"note"`
	QR        string `gorm:"size:255" json:"qr,omitempty"` // payload encoded into the table QR code
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []Item `gorm:"foreignKey:OrderID" json:"items"`
}

// Item is one menu line within an order. Price is the unit price frozen at
// the moment the line was last written, not a live join against Menu.
// One row per (order, menu) pair; reconciliation upserts by that pair.
type Item struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	OrderID     string `gorm:"size:36;uniqueIndex:idx_items_order_menu;not null" json:"idOrder"`
	MenuID      uint   `gorm:"uniqueIndex:idx_items_order_menu;not null" json:"idMenu"`
	Menu        Menu   `json:"-"`
	Qty         int    `gorm:"not null" json:"qty"`
	Price       int64  `gorm:"not null" json:"price"`
	IsDelivered bool   `gorm:"not null;default:false" json:"isDelivered"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
