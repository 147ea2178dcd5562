package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItem struct {
	ID         uuid.UUID `gorm:"primaryKey"                                json:"id"`
	SessionID  uuid.UUID `gorm:"uniqueIndex:idx_session_item;not null"     json:"session_id"`
	MenuItemID string    `gorm:"uniqueIndex:idx_session_item;size:64;not null" json:"menu_item_id"`
	Quantity   uint      `gorm:"default:1;check:quantity>0"                json:"quantity"`
	Position   int       `gorm:"not null;default:0"                        json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

type Order struct {
	ID            uuid.UUID       `gorm:"primaryKey"                     json:"id"`
	TokenNumber   string          `gorm:"size:3;index;not null"          json:"token_number"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID"             json:"items"`
	Total         decimal.Decimal `gorm:"type:numeric(10,2);not null"    json:"total"`
	PaymentMethod string          `gorm:"size:16;not null"               json:"payment_method"`
	Status        OrderStatus     `gorm:"size:16;index;not null"         json:"status"`
	CreatedAt     time.Time       `gorm:"index;not null"                 json:"timestamp"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a snapshot of a cart line taken at checkout; later menu
// changes never reach placed orders.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"      json:"-"`
	OrderID     uuid.UUID       `gorm:"index;not null"                json:"-"`
	MenuItemID  string          `gorm:"size:64;not null"              json:"id"`
	Name        string          `gorm:"not null"                      json:"name"`
	Description string          `json:"description"`
	Category    string          `gorm:"size:32"                       json:"category"`
	ImageURL    string          `json:"image_url"`
	IsVeg       bool            `json:"is_veg"`
	IsSpicy     bool            `json:"is_spicy"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"   json:"price"`
	Quantity    uint            `gorm:"check:quantity>0;not null"     json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func All() []any {
	return []any{&CartItem{}, &Order{}, &OrderItem{}}
}
