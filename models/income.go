package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomePayload is a single income (cashflow) record.
type IncomePayload struct {
	Date    time.Time       `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Source  string          `json:"source"`
	Notes   string          `json:"notes,omitempty"`
	Deleted bool            `json:"deleted,omitempty"`
}
