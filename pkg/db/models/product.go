package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the single catalog entity.
//
// Price is stored as numeric(10,2) and serialized as a string-encoded decimal
// on the wire, so clients never see float rounding. Stock and IsActive carry
// no gorm default tags: GORM skips zero values on insert when a default is
// declared, and an explicit false or 0 could then never be persisted.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"column:name;size:255;not null" json:"name"`
	Description *string         `gorm:"column:description" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Stock       int             `gorm:"column:stock;not null" json:"stock"`
	IsActive    bool            `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
