// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment mode values accepted on an expense.
const (
	PaymentCash       = "Cash"
	PaymentCard       = "Card"
	PaymentUPI        = "UPI"
	PaymentNetBanking = "Net Banking"
)

// Need-vs-want classification values.
const (
	SpendNeed    = "Need"
	SpendWant    = "Want"
	SpendNeutral = "Neutral"
)

// ExpensePayload is the entity-specific body of an expense write. Categories
// are referenced by name pair (C1/C2) because that is how the authoritative
// sheet stores them; the cache keeps the same denormalized shape so hydration
// is a straight replace.
type ExpensePayload struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryC1  string          `json:"c1_name"`
	CategoryC2  string          `json:"c2_name"`
	PaymentMode string          `json:"payment_mode"`
	Notes       string          `json:"notes,omitempty"`
	Person      string          `json:"person,omitempty"`
	NeedVsWant  string          `json:"need_vs_want,omitempty"`

	// Deleted marks a soft delete. Deleted expenses stay on the sheet and
	// in the cache but are excluded from reads.
	Deleted bool `json:"deleted,omitempty"`
}

// CategoryPayload is a top-level (C1) spending category.
type CategoryPayload struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// SubcategoryPayload is a second-level (C2) category nested under a C1 by name.
type SubcategoryPayload struct {
	Name   string `json:"name"`
	C1Name string `json:"c1_name"`
	Active bool   `json:"active"`
}
