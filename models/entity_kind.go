package models

// EntityKind identifies which class of record a write or cache entry carries.
type EntityKind string

const (
	KindExpense     EntityKind = "expense"
	KindCategory    EntityKind = "category"
	KindSubcategory EntityKind = "subcategory"
	KindIncome      EntityKind = "income_record"
)

// AllEntityKinds is the exhaustive set of kinds accepted by validators and
// the write path. Any other value is rejected.
var AllEntityKinds = []EntityKind{KindExpense, KindCategory, KindSubcategory, KindIncome}

// Valid reports whether k is one of the known entity kinds.
func (k EntityKind) Valid() bool {
	for _, known := range AllEntityKinds {
		if k == known {
			return true
		}
	}
	return false
}
