package model

import "time"

// StatusPending is the status every order starts with. Admins may later
// overwrite it with any string.
const StatusPending = "pending"

type Book struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Author      string `gorm:"size:100;not null"`
	PriceCents  int64  `gorm:"not null;check:price_cents >= 0"`
	Description string `gorm:"type:text;not null"`
	Genre       string `gorm:"size:50;not null"`
	Stock       int    `gorm:"not null;check:stock >= 0"`
	ImageURL    string `gorm:"size:500"`
	CreatedAt   time.Time
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:120;uniqueIndex;not null"`
	Phone     string `gorm:"size:20"`
	Address   string `gorm:"type:text"`
	CreatedAt time.Time
}

func (User) TableName() string { return "users" }

type Order struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index;not null"`
	TotalCents int64  `gorm:"not null"`
	Status     string `gorm:"type:text;not null"`
	CreatedAt  time.Time

	// User only declares the foreign key; it is never loaded.
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// OrderItem keeps the unit price the customer paid, independent of later
// catalog price changes.
type OrderItem struct {
	ID         uint  `gorm:"primaryKey"`
	OrderID    uint  `gorm:"index;not null"`
	BookID     uint  `gorm:"index;not null"`
	Quantity   int   `gorm:"not null;check:quantity > 0"`
	PriceCents int64 `gorm:"not null"`

	Order *Order `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Book  *Book  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// OrderLine is an order item joined with the title of its book.
type OrderLine struct {
	BookTitle  string
	Quantity   int
	PriceCents int64
}

// OrderDetail is an order header with its resolved lines.
type OrderDetail struct {
	Order
	Lines []OrderLine
}
