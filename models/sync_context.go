package models

// SyncContext scopes every server-side operation to exactly one user and
// that user's authoritative sheet locations. It is constructed once per
// request (or per hydration run) and passed explicitly; there is no global
// "current user" state.
type SyncContext struct {
	UserID string `json:"user_id"`

	// CategoriesSheetID, ExpensesSheetID and CashflowsSheetID are handles
	// to the user's remote sheets. Their concrete format belongs to the
	// authoritative store and is treated as opaque here.
	CategoriesSheetID string `json:"categories_sheet_id"`
	ExpensesSheetID   string `json:"expenses_sheet_id"`
	CashflowsSheetID  string `json:"cashflows_sheet_id"`
}

// SheetFor returns the sheet handle that stores rows of the given kind.
// Categories and subcategories share one sheet; income records live on the
// cashflows sheet.
func (c SyncContext) SheetFor(kind EntityKind) string {
	switch kind {
	case KindCategory, KindSubcategory:
		return c.CategoriesSheetID
	case KindIncome:
		return c.CashflowsSheetID
	default:
		return c.ExpensesSheetID
	}
}
