package entity

import (
	"time"

	"gorm.io/gorm"
)

// Payment methods accepted at checkout. "cash" settles on delivery and
// never goes through the provider.
const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// Several Payment rows may exist per order (retries). The current one
// is whichever was last moved to PAID.
type Payment struct {
	gorm.Model
	Method string        `gorm:"not null" json:"method"`
	Amount int64         `json:"amount"`
	Status PaymentStatus `gorm:"type:varchar(16);not null;default:PENDING" json:"status"`
	PaidAt *time.Time    `json:"paidAt,omitempty"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`
}
