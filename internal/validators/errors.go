package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEntityKind    = errors.New("invalid entity kind")
	ErrInvalidClientWriteID = errors.New("invalid client write id")
	ErrEmptyPayload         = errors.New("payload is required")
	ErrMissingDate          = errors.New("date is required")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrInvalidPaymentMode   = errors.New("invalid payment mode")
	ErrInvalidNeedVsWant    = errors.New("invalid need-vs-want value")
	ErrEmptyCategoryName    = errors.New("category name is required")
	ErrEmptyParentCategory  = errors.New("parent category name is required")
	ErrEmptyIncomeSource    = errors.New("income source is required")
)
