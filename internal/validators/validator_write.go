package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-spend-keeper/models"
	"github.com/shopspring/decimal"
)

// Field name constants used to specify which fields should be validated.
const (
	FieldClientWriteID = "client_write_id"
	FieldEntityKind    = "entity_kind"
	FieldPayload       = "payload"
	FieldDate          = "date"
	FieldAmount        = "amount"
	FieldPaymentMode   = "payment_mode"
	FieldNeedVsWant    = "need_vs_want"
	FieldCategoryName  = "name"
	FieldParentC1      = "c1_name"
	FieldIncomeSource  = "source"
)

var allowedPaymentModes = []string{
	models.PaymentCash,
	models.PaymentCard,
	models.PaymentUPI,
	models.PaymentNetBanking,
}

var allowedNeedVsWant = []string{
	models.SpendNeed,
	models.SpendWant,
	models.SpendNeutral,
}

// WriteValidator implements the Validator interface for all write-path
// domain models: ExpensePayload, CategoryPayload, SubcategoryPayload,
// IncomePayload, and QueuedWrite.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type WriteValidator struct {
}

// NewWriteValidator constructs a new WriteValidator
// and returns it as the Validator interface.
func NewWriteValidator() Validator {
	return &WriteValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *WriteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ExpensePayload:
		return v.validateExpense(ctx, value, fields...)
	case *models.ExpensePayload:
		return v.validateExpense(ctx, *value, fields...)

	case models.CategoryPayload:
		return v.validateCategory(ctx, value, fields...)
	case *models.CategoryPayload:
		return v.validateCategory(ctx, *value, fields...)

	case models.SubcategoryPayload:
		return v.validateSubcategory(ctx, value, fields...)
	case *models.SubcategoryPayload:
		return v.validateSubcategory(ctx, *value, fields...)

	case models.IncomePayload:
		return v.validateIncome(ctx, value, fields...)
	case *models.IncomePayload:
		return v.validateIncome(ctx, *value, fields...)

	case models.QueuedWrite:
		return v.validateQueuedWrite(ctx, value, fields...)
	case *models.QueuedWrite:
		return v.validateQueuedWrite(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func isAllowed(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// validateExpense validates a single expense payload.
//
// Default validated fields: Date, Amount, PaymentMode, NeedVsWant.
// An empty NeedVsWant is accepted; when present it must be one of
// the recognized classification values.
func (v *WriteValidator) validateExpense(ctx context.Context, e models.ExpensePayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDate, FieldAmount, FieldPaymentMode, FieldNeedVsWant}
	}

	for _, f := range fields {
		switch f {
		case FieldDate:
			if e.Date.IsZero() {
				return ErrMissingDate
			}
		case FieldAmount:
			if e.Amount.LessThan(decimal.Zero) {
				return ErrNegativeAmount
			}
		case FieldPaymentMode:
			if !isAllowed(e.PaymentMode, allowedPaymentModes) {
				return ErrInvalidPaymentMode
			}
		case FieldNeedVsWant:
			if e.NeedVsWant != "" && !isAllowed(e.NeedVsWant, allowedNeedVsWant) {
				return ErrInvalidNeedVsWant
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCategory validates a top-level category payload.
func (v *WriteValidator) validateCategory(ctx context.Context, c models.CategoryPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCategoryName}
	}

	for _, f := range fields {
		switch f {
		case FieldCategoryName:
			if c.Name == "" {
				return ErrEmptyCategoryName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSubcategory validates a second-level category payload.
// A subcategory always names its parent; the write path resolves the
// parent against the cache, the validator only checks presence.
func (v *WriteValidator) validateSubcategory(ctx context.Context, s models.SubcategoryPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCategoryName, FieldParentC1}
	}

	for _, f := range fields {
		switch f {
		case FieldCategoryName:
			if s.Name == "" {
				return ErrEmptyCategoryName
			}
		case FieldParentC1:
			if s.C1Name == "" {
				return ErrEmptyParentCategory
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateIncome validates an income payload.
func (v *WriteValidator) validateIncome(ctx context.Context, in models.IncomePayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDate, FieldAmount, FieldIncomeSource}
	}

	for _, f := range fields {
		switch f {
		case FieldDate:
			if in.Date.IsZero() {
				return ErrMissingDate
			}
		case FieldAmount:
			if in.Amount.LessThan(decimal.Zero) {
				return ErrNegativeAmount
			}
		case FieldIncomeSource:
			if in.Source == "" {
				return ErrEmptyIncomeSource
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateQueuedWrite validates the envelope of a pending write and then
// the entity payload it carries, decoded according to EntityKind.
//
// Default validated fields: ClientWriteID, EntityKind, Payload.
func (v *WriteValidator) validateQueuedWrite(ctx context.Context, w models.QueuedWrite, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClientWriteID, FieldEntityKind, FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldClientWriteID:
			if w.LocalID == "" {
				return ErrInvalidClientWriteID
			}
		case FieldEntityKind:
			if !w.EntityKind.Valid() {
				return ErrInvalidEntityKind
			}
		case FieldPayload:
			if len(w.Payload) == 0 {
				return ErrEmptyPayload
			}
			if err := v.validatePayloadForKind(ctx, w.EntityKind, w.Payload); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePayloadForKind decodes raw into the payload type that kind names
// and runs the type-specific validation on the result.
func (v *WriteValidator) validatePayloadForKind(ctx context.Context, kind models.EntityKind, raw json.RawMessage) error {
	switch kind {
	case models.KindExpense:
		var e models.ExpensePayload
		if err := json.Unmarshal(raw, &e); err != nil {
			return fmt.Errorf("cannot decode expense payload: %w", err)
		}
		return v.validateExpense(ctx, e)
	case models.KindCategory:
		var c models.CategoryPayload
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("cannot decode category payload: %w", err)
		}
		return v.validateCategory(ctx, c)
	case models.KindSubcategory:
		var s models.SubcategoryPayload
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("cannot decode subcategory payload: %w", err)
		}
		return v.validateSubcategory(ctx, s)
	case models.KindIncome:
		var in models.IncomePayload
		if err := json.Unmarshal(raw, &in); err != nil {
			return fmt.Errorf("cannot decode income payload: %w", err)
		}
		return v.validateIncome(ctx, in)
	default:
		return ErrInvalidEntityKind
	}
}
