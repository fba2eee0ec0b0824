package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Plan is a purchasable monthly package. Price is in USD.
type Plan struct {
	ID        uint                        `gorm:"primaryKey"`
	Name      string                      `gorm:"column:name;not null"`
	Price     decimal.Decimal             `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	Features  datatypes.JSONSlice[string] `gorm:"column:features;not null"`
	SortOrder int                         `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time                   `gorm:"column:created_at;autoCreateTime"`
}
