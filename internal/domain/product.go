package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. The catalog is seeded once at bootstrap and
// read-only afterwards.
type Product struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"index" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Category  string          `gorm:"size:50" json:"category"`
	Image     string          `gorm:"size:1024" json:"image"` // URL to product image
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
