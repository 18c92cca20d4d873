package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateWorkerRequest struct {
	Name      string           `json:"name"      validate:"required"`
	Role      *string          `json:"role"`
	DailyWage *decimal.Decimal `json:"dailyWage" validate:"omitempty,min=0"`
}

// UpdateWorkerRequest is a partial update: nil Name / Role keep the stored
// value. DailyWage is always overwritten with the submitted value — sending
// null (or omitting the field) clears the wage.
type UpdateWorkerRequest struct {
	Name      *string          `json:"name"`
	Role      *string          `json:"role"`
	DailyWage *decimal.Decimal `json:"dailyWage" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type WorkerResponse struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Role      string           `json:"role"`
	DailyWage *decimal.Decimal `json:"dailyWage"`
	CreatedAt string           `json:"createdAt"`
}
