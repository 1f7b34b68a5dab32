package course

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course holds the subset of course data the coupon engine needs. Course
// content management lives outside this service, so courses are read-only
// here.
type Course struct {
	ID          int             `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2)"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
