package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker is a registered contract/wage worker. DailyWage is nullable —
// nil means "not set", which is distinct from a wage of zero.
type Worker struct {
	ID        uint             `gorm:"primaryKey"`
	Name      string           `gorm:"index;not null"`
	Role      string           `gorm:"not null;default:''"`
	DailyWage *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CreatedAt time.Time
}
