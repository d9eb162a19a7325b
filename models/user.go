package models

import "time"

// User maps an authenticated user to the remote sheets that hold their
// authoritative data. The row is created lazily on first contact, after
// the sheet service provisions the user's workbook.
type User struct {
	UserID            string    `json:"user_id"`
	CategoriesSheetID string    `json:"categories_sheet_id"`
	ExpensesSheetID   string    `json:"expenses_sheet_id"`
	CashflowsSheetID  string    `json:"cashflows_sheet_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// SyncContext derives the per-request scope from the stored sheet mapping.
func (u User) SyncContext() SyncContext {
	return SyncContext{
		UserID:            u.UserID,
		CategoriesSheetID: u.CategoriesSheetID,
		ExpensesSheetID:   u.ExpensesSheetID,
		CashflowsSheetID:  u.CashflowsSheetID,
	}
}
